package mockadmin

import (
	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

// DefaultUsers seeds the demo user list.
func DefaultUsers() []adminapi.User {
	return []adminapi.User{
		{ID: "6f3b2a90-1c4d-4e8a-9f21-0d5c7b8e4a11", Email: "alice@example.com", Name: "Alice", TwoFactorEnabled: true, AttachmentCount: 3, AttachmentSize: "1.2 MB"},
		{ID: "b81d5e02-77aa-4f0c-8d36-4e9a1c2f6b47", Email: "bob@example.com", Name: "Bob", AttachmentCount: 0, AttachmentSize: "0 B"},
		{ID: "c4a9f7d3-0b21-44e5-a8c0-93d61f5e2a78", Email: "carol@example.com", Name: "Carol", TwoFactorEnabled: true, AttachmentCount: 12, AttachmentSize: "48.7 MB"},
	}
}

// DefaultGroups seeds the demo config schema: one toggled group, one
// plain group, one undocumented group, and a sprinkle of read-only
// elements across them.
func DefaultGroups() []schema.Group {
	return []schema.Group{
		{
			Group:       "smtp",
			GroupDoc:    "SMTP Email Settings",
			GroupToggle: "smtp_enabled",
			Elements: []schema.Element{
				{Name: "smtp_enabled", Type: schema.FieldCheckbox, Value: true, Default: false, Editable: true,
					Doc: schema.Doc{Name: "Enabled", Description: "Enable SMTP mail delivery"}},
				{Name: "smtp_host", Type: schema.FieldText, Value: "mail.example.com", Editable: true,
					Doc: schema.Doc{Name: "Host", Description: "SMTP server hostname"}},
				{Name: "smtp_port", Type: schema.FieldNumber, Value: float64(587), Default: float64(25), Editable: true,
					Doc: schema.Doc{Name: "Port", Description: "SMTP server port"}},
				{Name: "smtp_username", Type: schema.FieldText, Value: "vault", Editable: true,
					Doc: schema.Doc{Name: "Username", Description: "SMTP auth username"}},
				{Name: "smtp_password", Type: schema.FieldPassword, Value: "hunter2", Editable: true,
					Doc: schema.Doc{Name: "Password", Description: "SMTP auth password"}},
			},
		},
		{
			Group:    "server",
			GroupDoc: "General Settings",
			Elements: []schema.Element{
				{Name: "signups_allowed", Type: schema.FieldCheckbox, Value: true, Default: true, Editable: true,
					Doc: schema.Doc{Name: "Allow Signups", Description: "Allow new user registrations"}},
				{Name: "invitations_allowed", Type: schema.FieldCheckbox, Value: true, Default: true, Editable: true,
					Doc: schema.Doc{Name: "Allow Invitations", Description: "Allow inviting new users"}},
				{Name: "password_iterations", Type: schema.FieldNumber, Value: float64(100000), Default: float64(100000), Editable: true,
					Doc: schema.Doc{Name: "Password Iterations", Description: "Server-side KDF iteration count"}},
				{Name: "domain", Type: schema.FieldText, Value: "https://vault.example.com", Editable: false,
					Doc: schema.Doc{Name: "Domain", Description: "Public server URL, set via environment"}},
			},
		},
		{
			Group: "internal",
			Elements: []schema.Element{
				{Name: "db_url", Type: schema.FieldPassword, Value: "data/db.sqlite3", Editable: false,
					Doc: schema.Doc{Name: "Database URL", Description: "Backing database location"}},
			},
		},
	}
}
