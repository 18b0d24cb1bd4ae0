package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
)

const samplePayload = `[
  {
    "group": "smtp",
    "groupdoc": "SMTP Email Settings",
    "grouptoggle": "smtp_enabled",
    "elements": [
      {"name": "smtp_enabled", "type": "checkbox", "value": true, "editable": true,
       "doc": {"name": "Enabled", "description": "Enable SMTP delivery"}},
      {"name": "smtp_host", "type": "text", "value": "mail.example.com", "editable": true,
       "doc": {"name": "Host", "description": "SMTP server hostname"}},
      {"name": "smtp_port", "type": "number", "value": 587, "default": 25, "editable": true,
       "doc": {"name": "Port", "description": "SMTP server port"}},
      {"name": "smtp_password", "type": "password", "value": "hunter2", "editable": true,
       "doc": {"name": "Password", "description": "SMTP auth password"}}
    ]
  },
  {
    "group": "server",
    "groupdoc": "General Settings",
    "elements": [
      {"name": "domain", "type": "text", "value": "https://vault.example.com", "editable": false,
       "doc": {"name": "Domain", "description": "Public server URL"}},
      {"name": "signups_allowed", "type": "checkbox", "value": false, "editable": true,
       "doc": {"name": "Allow Signups", "description": "Allow new registrations"}}
    ]
  }
]`

func mustParse(t *testing.T, payload string) *Schema {
	t.Helper()
	s, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s
}

func TestParse_OrderPreserved(t *testing.T) {
	s := mustParse(t, samplePayload)

	groups := s.Groups()
	if len(groups) != 2 || groups[0].Group != "smtp" || groups[1].Group != "server" {
		t.Fatalf("unexpected groups: %+v", groups)
	}

	all := s.AllElements()
	wantOrder := []string{"smtp_enabled", "smtp_host", "smtp_port", "smtp_password", "domain", "signups_allowed"}
	if len(all) != len(wantOrder) {
		t.Fatalf("expected %d elements, got %d", len(wantOrder), len(all))
	}
	for i, name := range wantOrder {
		if all[i].Name != name {
			t.Fatalf("element %d: want %q, got %q", i, name, all[i].Name)
		}
	}
}

func TestParse_UnsupportedType(t *testing.T) {
	_, err := Parse([]byte(`[{"group":"g","groupdoc":"G","elements":[
		{"name":"when","type":"date","value":"2020-01-01","editable":true,
		 "doc":{"name":"When","description":""}}]}]`))
	if err == nil {
		t.Fatalf("expected schema error for unsupported type")
	}
	if !core.IsCategory(err, core.ErrCatSchema) {
		t.Fatalf("expected schema category, got %v", err)
	}
	if !strings.Contains(err.Error(), "date") {
		t.Fatalf("error should name the offending type: %v", err)
	}
}

func TestReadOnlyElements_AggregatesAcrossGroups(t *testing.T) {
	s := mustParse(t, samplePayload)
	ro := s.ReadOnlyElements()
	if len(ro) != 1 || ro[0].Name != "domain" {
		t.Fatalf("expected only domain to be read-only, got %+v", ro)
	}
}

func TestValidate_DuplicateName(t *testing.T) {
	s := mustParse(t, `[
		{"group":"a","groupdoc":"A","elements":[
			{"name":"x","type":"text","value":"1","editable":true,"doc":{"name":"X","description":""}}]},
		{"group":"b","groupdoc":"B","elements":[
			{"name":"x","type":"text","value":"2","editable":true,"doc":{"name":"X","description":""}}]}
	]`)
	_, err := s.Validate()
	var domErr *core.DomainError
	if !errors.As(err, &domErr) || domErr.Code != core.CodeDuplicateName {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestValidate_ToggleMustBeEditableCheckbox(t *testing.T) {
	s := mustParse(t, `[{"group":"g","groupdoc":"G","grouptoggle":"t","elements":[
		{"name":"t","type":"text","value":"","editable":true,"doc":{"name":"T","description":""}}]}]`)
	if _, err := s.Validate(); err == nil {
		t.Fatalf("expected error for non-checkbox toggle")
	}

	s = mustParse(t, `[{"group":"g","groupdoc":"G","grouptoggle":"missing","elements":[
		{"name":"t","type":"checkbox","value":true,"editable":true,"doc":{"name":"T","description":""}}]}]`)
	if _, err := s.Validate(); err == nil {
		t.Fatalf("expected error for dangling toggle reference")
	}
}

func TestValidate_WarnsOnUnreachableEditable(t *testing.T) {
	s := mustParse(t, `[{"group":"hidden","elements":[
		{"name":"lost","type":"text","value":"v","editable":true,"doc":{"name":"Lost","description":""}},
		{"name":"shown","type":"text","value":"v","editable":false,"doc":{"name":"Shown","description":""}}]}]`)
	warnings, err := s.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "lost") {
		t.Fatalf("expected one warning naming the unreachable element, got %v", warnings)
	}
}

func TestElement_DisplayValues(t *testing.T) {
	s := mustParse(t, samplePayload)

	port, ok := s.Element("smtp_port")
	if !ok {
		t.Fatalf("smtp_port missing")
	}
	if port.StringValue() != "587" {
		t.Fatalf("integer values should display without decimals, got %q", port.StringValue())
	}
	if port.DefaultString() != "25" {
		t.Fatalf("default should display as 25, got %q", port.DefaultString())
	}

	enabled, _ := s.Element("smtp_enabled")
	if !enabled.BoolValue() {
		t.Fatalf("expected smtp_enabled to read true")
	}
	if enabled.StringValue() != "true" {
		t.Fatalf("bool display: got %q", enabled.StringValue())
	}
}

func TestExport_YAMLAndJSON(t *testing.T) {
	s := mustParse(t, samplePayload)

	y, err := s.Export(ExportYAML)
	if err != nil {
		t.Fatalf("yaml export: %v", err)
	}
	if !strings.Contains(string(y), "smtp_host: mail.example.com") {
		t.Fatalf("yaml export missing value:\n%s", y)
	}

	j, err := s.Export(ExportJSON)
	if err != nil {
		t.Fatalf("json export: %v", err)
	}
	if !strings.Contains(string(j), `"smtp_port": 587`) {
		t.Fatalf("json export missing numeric value:\n%s", j)
	}

	if _, err := s.Export(ExportFormat("toml")); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
