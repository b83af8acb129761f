//go:build !dev

package runtime

import "github.com/vcrobe/nojs-blocks/console"

// callOnInit invokes OnInit, recovering and logging a panic so one faulty
// model does not take the whole tree down.
func (v *View) callOnInit(i Initializer) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnInit panic in view", v.name+":", rec)
		}
	}()
	i.OnInit()
}

// callOnUpdate invokes OnUpdate with the same recovery as callOnInit.
func (v *View) callOnUpdate(u UpdateReceiver) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnUpdate panic in view", v.name+":", rec)
		}
	}()
	u.OnUpdate()
}

// callOnDestroy invokes OnDestroy with the same recovery as callOnInit.
func (v *View) callOnDestroy(c Cleaner) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnDestroy panic in view", v.name+":", rec)
		}
	}()
	c.OnDestroy()
}
