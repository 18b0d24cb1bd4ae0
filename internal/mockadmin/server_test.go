package mockadmin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

func TestServer_ListUsers(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/users")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []adminapi.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.Len(t, users, 3)
}

func TestServer_ConfigSchemaParses(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/config")
	require.NoError(t, err)
	defer resp.Body.Close()

	var groups []schema.Group
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&groups))

	s := schema.New(groups)
	_, err = s.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, s.ReadOnlyElements())
}

func TestServer_DeleteRemovesUser(t *testing.T) {
	mock := New()
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	id := DefaultUsers()[0].ID
	resp, err := http.Post(srv.URL+"/admin/users/"+id+"/delete", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, mock.Hits("/admin/users/{id}/delete"))

	resp, err = http.Get(srv.URL + "/admin/users")
	require.NoError(t, err)
	defer resp.Body.Close()
	var users []adminapi.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.Len(t, users, 2)
}

func TestServer_FailureInjection(t *testing.T) {
	mock := New()
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	mock.FailWith("/admin/config/backup_db", "sqlite3 not found")

	resp, err := http.Post(srv.URL+"/admin/config/backup_db", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		ErrorModel struct {
			Message string `json:"Message"`
		} `json:"ErrorModel"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "sqlite3 not found", body.ErrorModel.Message)
}

func TestServer_SaveAndResetConfig(t *testing.T) {
	mock := New()
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	payload, _ := json.Marshal(map[string]any{"smtp_host": "mail.example.com"})
	resp, err := http.Post(srv.URL+"/admin/config/", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, mock.SavedConfig())
	assert.Equal(t, "mail.example.com", mock.SavedConfig()["smtp_host"])

	resp, err = http.Post(srv.URL+"/admin/config/delete", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, mock.SavedConfig())
}

func TestServer_InviteValidatesEmail(t *testing.T) {
	mock := New()
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	payload, _ := json.Marshal(map[string]string{"email": ""})
	resp, err := http.Post(srv.URL+"/admin/invite/", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
