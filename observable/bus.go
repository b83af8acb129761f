// Package observable provides the synchronous publish/subscribe registry, the
// ordered List collection that raises change notifications, and Signal values.
//
// Nothing here queues: Raise and every List mutation invoke handlers on the
// caller's stack, and a handler may mutate the same list or bus again before
// the outer call returns.
package observable

// Handler receives the arguments passed to Raise.
type Handler func(args any)

// Subscription cancels one registration. The zero value is a no-op.
type Subscription struct {
	cancel func()
}

// Cancel removes the registration. Calling it more than once is safe.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

type busKey struct {
	target any
	event  string
}

// Bus dispatches named events per target. Targets must be comparable,
// typically pointers.
type Bus struct {
	handlers map[busKey]*subscribers[Handler]
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[busKey]*subscribers[Handler])}
}

// On registers fn for event on target.
func (b *Bus) On(target any, event string, fn Handler) Subscription {
	key := busKey{target, event}
	subs, ok := b.handlers[key]
	if !ok {
		subs = &subscribers[Handler]{}
		b.handlers[key] = subs
	}
	id := subs.add(fn)

	return Subscription{cancel: func() {
		if subs.remove(id) && subs.len() == 0 && b.handlers[key] == subs {
			delete(b.handlers, key)
		}
	}}
}

// Off removes handlers. A nil target or an empty event matches anything, so
// Off(nil, "") clears the bus.
func (b *Bus) Off(target any, event string) {
	for key := range b.handlers {
		if (target == nil || key.target == target) && (event == "" || key.event == event) {
			delete(b.handlers, key)
		}
	}
}

// Raise invokes the handlers registered for event on target, in registration
// order, and reports how many ran.
func (b *Bus) Raise(target any, event string, args any) int {
	subs, ok := b.handlers[busKey{target, event}]
	if !ok {
		return 0
	}
	fns := subs.snapshot()
	for _, fn := range fns {
		fn(args)
	}
	return len(fns)
}

// Count reports how many handlers are registered for event on target.
func (b *Bus) Count(target any, event string) int {
	if subs, ok := b.handlers[busKey{target, event}]; ok {
		return subs.len()
	}
	return 0
}
