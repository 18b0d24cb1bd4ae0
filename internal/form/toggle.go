package form

// ToggleBinding ties a group's master checkbox to the other editable
// controls in the same group. Bindings are built once from the schema
// and held explicitly; there is no ambient registry.
type ToggleBinding struct {
	Toggle     *Field
	Dependents []*Field
}

// bind derives the initial dependent state from the checkbox's current
// value. No values are cleared here: initial rendering must not mutate
// what the backend sent.
func (b *ToggleBinding) bind() {
	enabled := b.Toggle.Checked()
	for _, dep := range b.Dependents {
		dep.SetDisabled(!enabled)
	}
}

// Apply re-evaluates the checkbox and propagates to every dependent.
// Transitioning into the disabled state additionally erases each
// dependent's value; re-enabling later does not restore it.
func (b *ToggleBinding) Apply() {
	enabled := b.Toggle.Checked()
	for _, dep := range b.Dependents {
		dep.SetDisabled(!enabled)
		if !enabled {
			dep.Clear()
		}
	}
}
