package form

import (
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

func doc(name string) schema.Doc {
	return schema.Doc{Name: name, Description: name + " description"}
}

func smtpSchema() *schema.Schema {
	return schema.New([]schema.Group{
		{
			Group:       "smtp",
			GroupDoc:    "SMTP Email Settings",
			GroupToggle: "smtp_enabled",
			Elements: []schema.Element{
				{Name: "smtp_enabled", Type: schema.FieldCheckbox, Value: true, Editable: true, Doc: doc("Enabled")},
				{Name: "smtp_host", Type: schema.FieldText, Value: "mail.example.com", Editable: true, Doc: doc("Host")},
				{Name: "smtp_port", Type: schema.FieldNumber, Value: float64(587), Default: float64(25), Editable: true, Doc: doc("Port")},
				{Name: "smtp_password", Type: schema.FieldPassword, Value: "hunter2", Editable: true, Doc: doc("Password")},
			},
		},
		{
			Group:    "server",
			GroupDoc: "General Settings",
			Elements: []schema.Element{
				{Name: "domain", Type: schema.FieldText, Value: "https://vault.example.com", Editable: false, Doc: doc("Domain")},
				{Name: "signups_allowed", Type: schema.FieldCheckbox, Value: false, Editable: true, Doc: doc("Allow Signups")},
			},
		},
	})
}

func mustForm(t *testing.T, s *schema.Schema) *Form {
	t.Helper()
	f, warnings, err := New(s)
	if err != nil {
		t.Fatalf("building form: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return f
}

func TestNew_SectionLayout(t *testing.T) {
	f := mustForm(t, smtpSchema())

	if len(f.Sections) != 3 {
		t.Fatalf("expected smtp + server + read-only sections, got %d", len(f.Sections))
	}
	if f.Sections[0].Title != "SMTP Email Settings" || f.Sections[1].Title != "General Settings" {
		t.Fatalf("editable sections out of order: %q, %q", f.Sections[0].Title, f.Sections[1].Title)
	}
	ro := f.Sections[2]
	if !ro.ReadOnly || len(ro.Fields) != 1 || ro.Fields[0].Label != "Domain" {
		t.Fatalf("read-only section should hold exactly the non-editable elements")
	}
	if ro.Fields[0].Name != "" {
		t.Fatalf("read-only fields must not carry a submission name")
	}
}

func TestNew_SkipsUndocumentedGroups(t *testing.T) {
	s := schema.New([]schema.Group{
		{
			Group: "hidden",
			Elements: []schema.Element{
				{Name: "secret_ro", Type: schema.FieldText, Value: "x", Editable: false, Doc: doc("Secret")},
			},
		},
	})
	f := mustForm(t, s)
	if len(f.Sections) != 1 || !f.Sections[0].ReadOnly {
		t.Fatalf("undocumented group should only surface via the read-only pass")
	}
}

func TestNew_WarnsOnUnreachableEditable(t *testing.T) {
	s := schema.New([]schema.Group{
		{
			Group: "hidden",
			Elements: []schema.Element{
				{Name: "lost", Type: schema.FieldText, Value: "x", Editable: true, Doc: doc("Lost")},
			},
		},
	})
	_, warnings, err := New(s)
	if err != nil {
		t.Fatalf("building form: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "lost") {
		t.Fatalf("expected unreachable-element warning, got %v", warnings)
	}
}

func TestNewField_UnsupportedType(t *testing.T) {
	_, err := NewField(schema.Element{Name: "when", Type: schema.FieldType("date"), Editable: true, Doc: doc("When")}, true)
	if !core.IsCategory(err, core.ErrCatSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	f := mustForm(t, smtpSchema())
	payload, err := f.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	if payload["smtp_enabled"] != true {
		t.Fatalf("checkbox should serialize verbatim, got %v", payload["smtp_enabled"])
	}
	if payload["smtp_port"] != float64(587) {
		t.Fatalf("number should serialize numeric, got %T %v", payload["smtp_port"], payload["smtp_port"])
	}
	if payload["smtp_host"] != "mail.example.com" {
		t.Fatalf("text should pass through verbatim, got %v", payload["smtp_host"])
	}
	if _, present := payload["domain"]; present {
		t.Fatalf("read-only element must never be a payload key")
	}
}

func TestSerialize_EmptyTextBecomesNull(t *testing.T) {
	f := mustForm(t, smtpSchema())
	host, _ := f.Field("smtp_host")
	host.Input.SetValue("")

	payload, err := f.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	v, present := payload["smtp_host"]
	if !present || v != nil {
		t.Fatalf("empty text should serialize as explicit null, got %v (present=%v)", v, present)
	}
}

func TestSerialize_NonNumericFailsWholeSave(t *testing.T) {
	f := mustForm(t, smtpSchema())
	port, _ := f.Field("smtp_port")
	port.Input.SetValue("not-a-port")

	_, err := f.Serialize()
	if !core.IsCategory(err, core.ErrCatValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestToggle_DisablesAndClearsDependents(t *testing.T) {
	f := mustForm(t, smtpSchema())
	master, _ := f.Field("smtp_enabled")
	host, _ := f.Field("smtp_host")
	port, _ := f.Field("smtp_port")

	// Initial binding derives from the current value without clearing.
	if host.Disabled() || host.RawValue() != "mail.example.com" {
		t.Fatalf("initial render must not disable or clear dependents")
	}

	master.SetChecked(false)
	f.ApplyToggles(master)

	if !host.Disabled() || !port.Disabled() {
		t.Fatalf("unchecking the master should disable dependents")
	}
	if host.RawValue() != "" || port.RawValue() != "" {
		t.Fatalf("unchecking the master should clear dependent values")
	}
	if master.Disabled() {
		t.Fatalf("the master checkbox must never disable itself")
	}

	// Re-checking re-enables but does not restore values.
	master.SetChecked(true)
	f.ApplyToggles(master)
	if host.Disabled() {
		t.Fatalf("re-checking should re-enable dependents")
	}
	if host.RawValue() != "" {
		t.Fatalf("clearing is destructive; values must stay empty")
	}
}

func TestSerialize_ExcludesDisabledDependents(t *testing.T) {
	f := mustForm(t, smtpSchema())
	master, _ := f.Field("smtp_enabled")
	master.SetChecked(false)
	f.ApplyToggles(master)

	payload, err := f.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if _, present := payload["smtp_host"]; present {
		t.Fatalf("disabled controls must be excluded from the payload")
	}
	if payload["smtp_enabled"] != false {
		t.Fatalf("the master itself still serializes, got %v", payload["smtp_enabled"])
	}
}

func TestPasswordReveal_PreservesValue(t *testing.T) {
	f := mustForm(t, smtpSchema())
	pw, _ := f.Field("smtp_password")

	if pw.Revealed() {
		t.Fatalf("passwords start masked")
	}
	pw.ToggleReveal()
	if !pw.Revealed() || pw.RawValue() != "hunter2" {
		t.Fatalf("reveal must not alter the underlying value")
	}
	pw.ToggleReveal()
	if pw.Revealed() {
		t.Fatalf("second toggle should mask again")
	}

	// Reveal is a password-only affordance.
	host, _ := f.Field("smtp_host")
	host.ToggleReveal()
	if host.Revealed() {
		t.Fatalf("reveal should be a no-op for text fields")
	}
}

func TestToggleSection_Independent(t *testing.T) {
	f := mustForm(t, smtpSchema())
	f.ToggleSection("smtp")
	if !f.Sections[0].Collapsed {
		t.Fatalf("expected smtp section collapsed")
	}
	if f.Sections[1].Collapsed {
		t.Fatalf("sections must collapse independently")
	}
	f.ToggleSection("smtp")
	if f.Sections[0].Collapsed {
		t.Fatalf("expected smtp section expanded again")
	}
}

func TestView_RendersControls(t *testing.T) {
	f := mustForm(t, smtpSchema())
	out := f.View(nil)
	for _, want := range []string{"SMTP Email Settings", "General Settings", ReadOnlyTitle, "[x]", "Domain"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}

	f.ToggleSection("smtp")
	out = f.View(nil)
	if strings.Contains(out, "Host") {
		t.Fatalf("collapsed section should hide its fields")
	}
}
