//go:build integration

package integration_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/audit"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/form"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/mockadmin"
)

// newStack spins up the fake admin API, a client pointed at it, and a
// real SQLite audit store in a temp dir.
func newStack(t *testing.T) (*mockadmin.Server, *adminapi.Client, *audit.Store) {
	t.Helper()

	mock := mockadmin.New()
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	client := adminapi.New(srv.URL, "integration-token")

	store, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return mock, client, store
}

func TestAdminFlow_EditSaveReload(t *testing.T) {
	mock, client, store := newStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Fetch and render the live form.
	s, err := client.ConfigSchema(ctx)
	require.NoError(t, err)
	f, warnings, err := form.New(s)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	// Edit a field, save, and verify the typed payload on the server.
	host, ok := f.Field("smtp_host")
	require.True(t, ok)
	host.Input.SetValue("smtp.internal")

	payload, err := f.Serialize()
	require.NoError(t, err)
	out := client.SaveConfig(ctx, payload)
	require.True(t, out.Success)
	require.NoError(t, store.Record(ctx, out))

	saved := mock.SavedConfig()
	require.NotNil(t, saved)
	assert.Equal(t, "smtp.internal", saved["smtp_host"])
	assert.Equal(t, float64(587), saved["smtp_port"])

	// Reload: the fresh schema still parses and validates.
	s2, err := client.ConfigSchema(ctx)
	require.NoError(t, err)
	_, err = s2.Validate()
	require.NoError(t, err)
}

func TestAdminFlow_ToggleClearsBeforeSave(t *testing.T) {
	mock, client, _ := newStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := client.ConfigSchema(ctx)
	require.NoError(t, err)
	f, _, err := form.New(s)
	require.NoError(t, err)

	master, ok := f.Field("smtp_enabled")
	require.True(t, ok)
	master.SetChecked(false)
	f.ApplyToggles(master)

	payload, err := f.Serialize()
	require.NoError(t, err)

	out := client.SaveConfig(ctx, payload)
	require.True(t, out.Success)

	saved := mock.SavedConfig()
	assert.Equal(t, false, saved["smtp_enabled"])
	// Dependents were disabled by the toggle and never sent.
	_, present := saved["smtp_host"]
	assert.False(t, present)
	_, present = saved["smtp_password"]
	assert.False(t, present)
}

func TestAdminFlow_UserLifecycle(t *testing.T) {
	mock, client, store := newStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out := client.Invite(ctx, "dave@example.com")
	require.True(t, out.Success)
	require.NoError(t, store.Record(ctx, out))

	users, err := client.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)

	var dave adminapi.User
	for _, u := range users {
		if u.Email == "dave@example.com" {
			dave = u
		}
	}
	require.NotEmpty(t, dave.ID)

	out = client.DeleteUser(ctx, dave.ID)
	require.True(t, out.Success)
	require.NoError(t, store.Record(ctx, out))

	users, err = client.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
	assert.Equal(t, 1, mock.Hits("/admin/users/{id}/delete"))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAdminFlow_FailureSurfacesDetail(t *testing.T) {
	mock, client, store := newStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mock.FailWith("/admin/config/backup_db", "no space left on device")

	out := client.BackupDB(ctx)
	require.False(t, out.Success)
	assert.Equal(t, "no space left on device", out.Detail)
	require.NoError(t, store.Record(ctx, out))

	entries, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
	assert.Equal(t, "no space left on device", entries[0].Detail)
}
