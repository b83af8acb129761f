package runtime

// Initializer is implemented by models that need setup before their view is
// rendered for the first time. OnInit runs exactly once.
type Initializer interface {
	OnInit()
}

// UpdateReceiver is implemented by models that want a hook before every
// update pass, for example to recompute derived fields.
type UpdateReceiver interface {
	OnUpdate()
}

// Cleaner is implemented by models holding resources that must be released
// when their view is disposed.
type Cleaner interface {
	OnDestroy()
}

// Attachable is implemented by models embedding ViewBase. The view attaches
// itself on construction so the model can request updates.
type Attachable interface {
	SetRenderer(r Renderer)
}
