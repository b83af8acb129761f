//go:build dev

package runtime

// In dev builds lifecycle hooks run unguarded so a panic fails fast.

func (v *View) callOnInit(i Initializer) {
	i.OnInit()
}

func (v *View) callOnUpdate(u UpdateReceiver) {
	u.OnUpdate()
}

func (v *View) callOnDestroy(c Cleaner) {
	c.OnDestroy()
}
