package runtime

import (
	"github.com/vcrobe/nojs-blocks/block"
	"golang.org/x/net/html"
)

// Renderer is the lifecycle surface a model sees through ViewBase, and the
// one a parent block drives for a referenced view.
type Renderer interface {
	Render()
	Bind()
	Update()
	Dispose()
	Mount(container *html.Node)
}

var (
	_ Renderer       = (*View)(nil)
	_ block.Child    = (*View)(nil)
	_ block.View     = (*View)(nil)
	_ block.Owned    = (*View)(nil)
	_ block.Resolver = (*View)(nil)
)
