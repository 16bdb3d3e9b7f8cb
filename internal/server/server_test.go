package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Khushi740/job-tracker/internal/store"
)

// newTestServer builds a server over a fresh in-memory store.
func newTestServer(t *testing.T) (*Server, *store.Memory) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	mem := store.NewMemory()
	srv, err := New(Config{Port: 8080}, mem, mem, zap.NewNop())
	require.NoError(t, err)
	return srv, mem
}

// doJSON performs a request against the routed handler and decodes the
// JSON response body into a generic map.
func doJSON(t *testing.T, srv *Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

// registerUser registers a fresh account and returns its bearer token.
func registerUser(t *testing.T, srv *Server, email string) string {
	t.Helper()
	code, resp := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, code)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}
