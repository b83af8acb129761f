// Package trackby holds sample views whose lists are keyed with trackBy:
// a bare string item, a struct field and several sibling nodes per item.
package trackby

import (
	"embed"

	"github.com/vcrobe/nojs-blocks/markup"
	"github.com/vcrobe/nojs-blocks/runtime"
)

//go:embed *.gt.html
var templates embed.FS

// TagList keys its items by the string itself.
type TagList struct {
	runtime.ViewBase
	Tags []string
}

func (t *TagList) OnInit() {
	if t.Tags == nil {
		t.Tags = []string{"golang", "blocks", "markup", "views"}
	}
}

func (t *TagList) AddTag(newTag string) {
	t.Tags = append(t.Tags, newTag)
	t.StateHasChanged()
}

func (t *TagList) ClearTags() {
	t.Tags = []string{}
	t.StateHasChanged()
}

// Product is keyed by ID.
type Product struct {
	ID   int
	Name string
}

// ProductList keys its items with dot notation.
type ProductList struct {
	runtime.ViewBase
	Products []Product
}

func (p *ProductList) OnInit() {
	if p.Products == nil {
		p.Products = []Product{
			{ID: 1, Name: "Laptop"},
			{ID: 2, Name: "Mouse"},
			{ID: 3, Name: "Keyboard"},
		}
	}
}

func (p *ProductList) AddProduct(name string) {
	p.Products = append(p.Products, Product{ID: len(p.Products) + 1, Name: name})
	p.StateHasChanged()
}

func (p *ProductList) RemoveProduct(id int) {
	for i, prod := range p.Products {
		if prod.ID == id {
			p.Products = append(p.Products[:i:i], p.Products[i+1:]...)
			break
		}
	}
	p.StateHasChanged()
}

func (p *ProductList) ClearProducts() {
	p.Products = []Product{}
	p.StateHasChanged()
}

// Item is keyed by ID.
type Item struct {
	ID   int
	Name string
}

// MultiItemList renders several sibling nodes per item.
type MultiItemList struct {
	runtime.ViewBase
	Items []Item
}

func (m *MultiItemList) OnInit() {
	if m.Items == nil {
		m.Items = []Item{
			{ID: 101, Name: "Alpha"},
			{ID: 102, Name: "Beta"},
			{ID: 103, Name: "Gamma"},
		}
	}
}

func (m *MultiItemList) AddItem(name string) {
	m.Items = append(m.Items, Item{ID: 100 + len(m.Items) + 1, Name: name})
	m.StateHasChanged()
}

// Register parses the sample templates and adds them to reg as "tags",
// "products" and "items".
func Register(reg *runtime.Registry) error {
	views := []struct {
		name  string
		model func() any
	}{
		{"tags", func() any { return &TagList{} }},
		{"products", func() any { return &ProductList{} }},
		{"items", func() any { return &MultiItemList{} }},
	}
	for _, v := range views {
		spec, err := markup.ParseFS(templates, v.name+".gt.html")
		if err != nil {
			return err
		}
		reg.Register(v.name, spec, v.model)
	}
	return nil
}
