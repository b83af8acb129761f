package runtime

import "github.com/vcrobe/nojs-blocks/console"

// ViewBase is embedded by models to gain StateHasChanged, which refreshes
// the view the model is attached to.
type ViewBase struct {
	renderer Renderer
}

// SetRenderer is called by New. User code should not call it.
func (b *ViewBase) SetRenderer(r Renderer) {
	b.renderer = r
}

// StateHasChanged signals that the model changed and runs an update pass.
// It is safe to call from event handlers.
func (b *ViewBase) StateHasChanged() {
	if b.renderer == nil {
		console.Warn("StateHasChanged called, but the model is not attached to a view")
		return
	}
	b.renderer.Update()
}
