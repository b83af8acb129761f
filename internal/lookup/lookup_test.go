package lookup

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type address struct {
	City string
}

type person struct {
	Name    string
	Age     int
	Home    *address
	Tags    []string
	private int
}

func (p *person) Greeting() string { return "hi " + p.Name }

type sequence []int

func (s sequence) Count() int   { return len(s) }
func (s sequence) At(i int) any { return s[i] }

func TestGet(t *testing.T) {
	p := &person{Name: "Ann", Age: 30, Home: &address{City: "Oslo"}, Tags: []string{"a", "b"}}
	root := map[string]any{
		"p":      p,
		"nested": map[string]any{"deep": map[string]int{"n": 4}},
		"seq":    sequence{5, 6},
		"nilptr": (*person)(nil),
	}
	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{"p.Name", "Ann", true},
		{"p.name", "Ann", true},
		{"p.home.city", "Oslo", true},
		{"p.Tags.1", "b", true},
		{"p.Tags.length", 2, true},
		{"p.Name.length", 3, true},
		{"nested.deep.n", 4, true},
		{"seq.1", 6, true},
		{"seq.count", 2, true},
		{"p.Tags.7", nil, false},
		{"p.missing", nil, false},
		{"p.private", nil, false},
		{"nilptr.Name", nil, false},
		{"missing.x", nil, false},
		{"", root, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Get(root, Split(tt.path))
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if tt.path == "" {
				if _, isMap := got.(map[string]any); !isMap {
					t.Errorf("Expected the root back, got %T", got)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGet_Methods(t *testing.T) {
	root := map[string]any{"p": &person{Name: "Bo"}}

	fn, ok := Get(root, Split("p.greeting"))
	if !ok {
		t.Fatalf("Expected method value")
	}
	out, err := Call(fn)
	if err != nil || out != "hi Bo" {
		t.Errorf("Expected 'hi Bo', got %v (%v)", out, err)
	}
}

func TestSet(t *testing.T) {
	p := &person{Home: &address{}}
	typed := map[string]int{}
	root := map[string]any{"p": p, "typed": typed}

	steps := []struct {
		path  string
		value any
		want  bool
	}{
		{"p.Name", "Cy", true},
		{"p.age", 41.0, true},
		{"p.Home.City", "Rome", true},
		{"typed.n", 3, true},
		{"top", "level", true},
		{"p.Age", "not a number", false},
		{"p.missing", 1, false},
		{"missing.x", 1, false},
		{"", 1, false},
	}
	for _, s := range steps {
		if got := Set(root, Split(s.path), s.value); got != s.want {
			t.Errorf("Set(%q) = %v, want %v", s.path, got, s.want)
		}
	}

	want := &person{Name: "Cy", Age: 41, Home: &address{City: "Rome"}}
	if diff := cmp.Diff(want, p, cmp.AllowUnexported(person{})); diff != "" {
		t.Errorf("Person mismatch (-want +got):\n%s", diff)
	}
	if typed["n"] != 3 || root["top"] != "level" {
		t.Errorf("Expected map writes, got %v and %v", typed["n"], root["top"])
	}
}

func TestCall(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name    string
		fn      any
		args    []any
		want    any
		wantErr error
	}{
		{"converts numbers", func(a int, b float64) float64 { return float64(a) + b }, []any{1.0, 2}, 3.0, nil},
		{"drops surplus", func(s string) string { return s }, []any{"x", "y"}, "x", nil},
		{"zero for missing", func(s string, n int) int { return n }, []any{"x"}, 0, nil},
		{"variadic", func(xs ...int) int { return len(xs) }, []any{1, 2, 3}, 3, nil},
		{"error only", func() error { return errBoom }, nil, nil, errBoom},
		{"value and error", func() (int, error) { return 1, errBoom }, nil, 1, errBoom},
		{"no result", func() {}, nil, nil, nil},
		{"not a func", 42, nil, nil, ErrNotFunc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Call(tt.fn, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Result mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := Call(func(n int) {}, "text"); err == nil {
		t.Errorf("Expected a conversion error")
	}
}
