package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartrx/smartrx/internal/authapi/adapters/memory"
	"github.com/smartrx/smartrx/internal/authapi/adapters/security"
	"github.com/smartrx/smartrx/internal/authapi/application"
	"github.com/smartrx/smartrx/internal/platform/token"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	signer, err := token.NewSigner(token.Config{
		Secret:   "http-test-secret",
		Issuer:   "smartrx-auth",
		Audience: "smartrx-services",
		TTL:      15 * time.Minute,
	})
	require.NoError(t, err)

	service := application.NewService(application.Dependencies{
		Accounts: memory.NewAccountStore(),
		Hasher:   security.NewPBKDF2Hasher(1024),
		Signer:   signer,
	})
	srv := httptest.NewServer(NewRouter(NewHandler(service)))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return res
}

func TestRegisterEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/api/auth/register", map[string]string{
		"username": "alice", "password": "pw123", "role": "Admin",
	})
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "Admin", created.Role)

	dup := postJSON(t, srv.URL+"/api/auth/register", map[string]string{
		"username": "alice", "password": "pw123",
	})
	defer dup.Body.Close()
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	bad := postJSON(t, srv.URL+"/api/auth/register", map[string]string{
		"username": "  ", "password": "pw123",
	})
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/api/auth/register", map[string]string{
		"username": "bob", "password": "pw123",
	})
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	ok := postJSON(t, srv.URL+"/api/auth/login", map[string]string{
		"username": "bob", "password": "pw123",
	})
	defer ok.Body.Close()
	require.Equal(t, http.StatusOK, ok.StatusCode)

	var login struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(ok.Body).Decode(&login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "User", login.Role)

	// Unknown user and wrong password produce identical status codes.
	wrong := postJSON(t, srv.URL+"/api/auth/login", map[string]string{
		"username": "bob", "password": "nope",
	})
	wrong.Body.Close()
	unknown := postJSON(t, srv.URL+"/api/auth/login", map[string]string{
		"username": "ghost", "password": "pw123",
	})
	unknown.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, wrong.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
}
