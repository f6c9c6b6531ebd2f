package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablesmith/internal/state"
	"github.com/leapstack-labs/tablesmith/pkg/core"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	store, err := state.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := New(Config{Schema: "default", SessionKey: "test-key"}, store)
	r := chi.NewMux()
	srv.routes(r)
	return srv, r
}

func postJSON(t *testing.T, h http.Handler, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpointCreatesTables(t *testing.T) {
	_, h := newTestServer(t)

	rec := postJSON(t, h, "/api/chat", chatRequest{Message: "create tables users, orders"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "2 tables")
	require.NotNil(t, resp.Schema)
	assert.True(t, resp.Schema.HasTable("users"))
	assert.True(t, resp.Schema.HasTable("orders"))
}

func TestChatSessionCarriesContext(t *testing.T) {
	_, h := newTestServer(t)

	first := postJSON(t, h, "/api/chat", chatRequest{Message: "create a users table"}, nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies, "first request must set a session cookie")

	// "it" resolves through the cookie-scoped conversation context
	second := postJSON(t, h, "/api/chat", chatRequest{Message: "add email to it"}, cookies)
	require.Equal(t, http.StatusOK, second.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	users, ok := resp.Schema.Table("users")
	require.True(t, ok)
	assert.True(t, users.HasColumn("email"))
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	_, h := newTestServer(t)
	rec := postJSON(t, h, "/api/chat", chatRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSchemaEmpty(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schema", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var schema core.Schema
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.Empty(t, schema.Tables)
}

func TestImportDDL(t *testing.T) {
	_, h := newTestServer(t)

	sql := "CREATE TABLE users (id INT PRIMARY KEY, email VARCHAR(255) UNIQUE);"
	rec := postJSON(t, h, "/api/schema/ddl", ddlRequest{SQL: sql}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var schema core.Schema
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	users, ok := schema.Table("users")
	require.True(t, ok)
	email, ok := users.Column("email")
	require.True(t, ok)
	assert.True(t, email.Unique)
}

func TestImportDDLRejectsGarbage(t *testing.T) {
	_, h := newTestServer(t)
	rec := postJSON(t, h, "/api/schema/ddl", ddlRequest{SQL: "SELECT 1;"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCategorizeEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	rec := postJSON(t, h, "/api/chat", chatRequest{Message: "create tables users, products, orders, payments"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cat := postJSON(t, h, "/api/schema/categorize", struct{}{}, nil)
	require.Equal(t, http.StatusOK, cat.Code)

	var resp struct {
		Assigned map[string]string `json:"assigned"`
		Schema   *core.Schema      `json:"schema"`
	}
	require.NoError(t, json.Unmarshal(cat.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Assigned)
	assert.NotEmpty(t, resp.Schema.Categories)
}

func TestExportSQL(t *testing.T) {
	_, h := newTestServer(t)

	postJSON(t, h, "/api/chat", chatRequest{Message: "create a users table"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/schema/sql", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CREATE TABLE users")
}
