package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhttp "github.com/smartrx/smartrx/internal/authapi/adapters/http"
	authmemory "github.com/smartrx/smartrx/internal/authapi/adapters/memory"
	"github.com/smartrx/smartrx/internal/authapi/adapters/security"
	authapp "github.com/smartrx/smartrx/internal/authapi/application"
	drugshttp "github.com/smartrx/smartrx/internal/drugsapi/adapters/http"
	drugsmemory "github.com/smartrx/smartrx/internal/drugsapi/adapters/memory"
	drugsapp "github.com/smartrx/smartrx/internal/drugsapi/application"
	"github.com/smartrx/smartrx/internal/platform/token"
	"github.com/smartrx/smartrx/internal/web/apiclient"
	"github.com/smartrx/smartrx/internal/web/session"
)

// testEnv runs the full stack in-process: auth API, drugs API, and the web
// front end bridging them through a memory session store.
type testEnv struct {
	web      *httptest.Server
	auth     *apiclient.AuthClient
	signer   *token.Signer
	sessions *session.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokenCfg := token.Config{
		Secret:   "test-secret",
		Issuer:   "smartrx-auth",
		Audience: "smartrx-services",
		TTL:      30 * time.Minute,
	}
	signer, err := token.NewSigner(tokenCfg)
	require.NoError(t, err)
	validator, err := token.NewValidator(tokenCfg)
	require.NoError(t, err)

	authService := authapp.NewService(authapp.Dependencies{
		Accounts: authmemory.NewAccountStore(),
		Hasher:   security.NewPBKDF2Hasher(1_000),
		Signer:   signer,
	})
	authServer := httptest.NewServer(authhttp.NewRouter(authhttp.NewHandler(authService)))
	t.Cleanup(authServer.Close)

	drugsHandler := drugshttp.NewHandler(drugsapp.NewService(drugsmemory.NewDrugStore()), validator)
	drugsServer := httptest.NewServer(drugshttp.NewRouter(drugsHandler))
	t.Cleanup(drugsServer.Close)

	sessions := session.NewMemoryStore()
	handler, err := NewHandler(
		apiclient.NewAuthClient(authServer.URL),
		apiclient.NewDrugsClient(drugsServer.URL),
		sessions,
		tokenCfg.TTL,
	)
	require.NoError(t, err)

	webServer := httptest.NewServer(NewRouter(handler))
	t.Cleanup(webServer.Close)

	return &testEnv{
		web:      webServer,
		auth:     apiclient.NewAuthClient(authServer.URL),
		signer:   signer,
		sessions: sessions,
	}
}

func (env *testEnv) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (env *testEnv) registerAccount(t *testing.T, username, password, role string) {
	t.Helper()
	_, err := env.auth.Register(context.Background(), username, password, role)
	require.NoError(t, err)
}

func (env *testEnv) loginBrowser(t *testing.T, client *http.Client, username, password string) {
	t.Helper()
	resp, err := client.PostForm(env.web.URL+"/account/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	require.Contains(t, body, "Drug Catalog")
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	env := newTestEnv(t)
	client := env.browser(t)

	resp, err := client.Get(env.web.URL + "/drugs")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "Log in")
	assert.NotContains(t, body, "Drug Catalog")
}

func TestLoginFailureShowsUniformError(t *testing.T) {
	env := newTestEnv(t)
	env.registerAccount(t, "alice", "pw123", "Admin")
	client := env.browser(t)

	for _, password := range []string{"wrong", "pw1234"} {
		resp, err := client.PostForm(env.web.URL+"/account/login", url.Values{
			"username": {"alice"},
			"password": {password},
		})
		require.NoError(t, err)
		body := readBody(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "invalid username or password")
	}

	// Unknown username yields the identical message.
	resp, err := client.PostForm(env.web.URL+"/account/login", url.Values{
		"username": {"nobody"},
		"password": {"pw123"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "invalid username or password")
}

func TestAdminCatalogFlow(t *testing.T) {
	env := newTestEnv(t)
	env.registerAccount(t, "alice", "pw123", "Admin")
	client := env.browser(t)
	env.loginBrowser(t, client, "alice", "pw123")

	resp, err := client.PostForm(env.web.URL+"/drugs/create", url.Values{
		"brandName":         {"Aspirin"},
		"manufacturer":      {"Bayer"},
		"ingredients":       {"acetylsalicylic acid, starch"},
		"dosageInstruction": {"1 tablet daily"},
		"manufacturedDate":  {"2026-01-15"},
		"expiryDate":        {"2028-01-15"},
		"price":             {"4.99"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "Aspirin")
	assert.Contains(t, body, "Bayer")

	resp, err = client.Get(env.web.URL + "/drugs/search?query=asp")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "Aspirin")

	resp, err = client.Get(env.web.URL + "/drugs/1")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "acetylsalicylic acid")
	assert.Contains(t, body, "1 tablet daily")

	resp, err = client.PostForm(env.web.URL+"/drugs/1/edit", url.Values{
		"brandName":    {"Aspirin Forte"},
		"manufacturer": {"Bayer"},
		"price":        {"6.50"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "Aspirin Forte")

	resp, err = client.PostForm(env.web.URL+"/drugs/1/delete", nil)
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "No drugs found")
}

func TestRegularUserCannotMutateCatalog(t *testing.T) {
	env := newTestEnv(t)
	client := env.browser(t)

	// Self-service registration through the web always creates a regular
	// user regardless of what the auth API would accept.
	resp, err := client.PostForm(env.web.URL+"/account/register", url.Values{
		"username": {"bob"},
		"password": {"pw123"},
	})
	require.NoError(t, err)
	readBody(t, resp)
	env.loginBrowser(t, client, "bob", "pw123")

	resp, err = client.Get(env.web.URL + "/drugs")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "Add drug")

	resp, err = client.PostForm(env.web.URL+"/drugs/create", url.Values{
		"brandName":    {"Aspirin"},
		"manufacturer": {"Bayer"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "You do not have permission")
}

func TestDuplicateWebRegistrationShowsConflict(t *testing.T) {
	env := newTestEnv(t)
	env.registerAccount(t, "alice", "pw123", "")
	client := env.browser(t)

	resp, err := client.PostForm(env.web.URL+"/account/register", url.Values{
		"username": {"alice"},
		"password": {"other"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "already taken")
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t)
	env.registerAccount(t, "alice", "pw123", "Admin")
	client := env.browser(t)
	env.loginBrowser(t, client, "alice", "pw123")

	resp, err := client.PostForm(env.web.URL+"/account/logout", nil)
	require.NoError(t, err)
	readBody(t, resp)

	resp, err = client.Get(env.web.URL + "/drugs")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "Log in")
	assert.NotContains(t, body, "Drug Catalog")
}

func TestExpiredTokenSessionIsDropped(t *testing.T) {
	env := newTestEnv(t)
	client := env.browser(t)

	expired, err := env.signer.Mint("alice", "Admin", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, env.sessions.Put(context.Background(), "stale-session", session.Session{
		Token:    expired,
		Username: "alice",
		Role:     "Admin",
	}, time.Hour))

	webURL, err := url.Parse(env.web.URL)
	require.NoError(t, err)
	client.Jar.SetCookies(webURL, []*http.Cookie{{Name: "smartrx_session", Value: "stale-session"}})

	resp, err := client.Get(env.web.URL + "/drugs")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "Log in")
	assert.NotContains(t, body, "Drug Catalog")

	_, err = env.sessions.Get(context.Background(), "stale-session")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
