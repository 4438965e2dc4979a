package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
)

func TestAuthClientLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "pw123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(LoginResult{Token: "tok", Username: body["username"], Role: "User"})
	}))
	defer server.Close()

	client := NewAuthClient(server.URL)

	result, err := client.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "tok", result.Token)
	assert.Equal(t, "alice", result.Username)

	_, err = client.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthClientRegisterConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	_, err := NewAuthClient(server.URL).Register(context.Background(), "alice", "pw123", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDrugsClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]domain.Drug{{ID: 1, BrandName: "Aspirin"}})
	}))
	defer server.Close()

	client := NewDrugsClient(server.URL)

	drugs, err := client.List(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, drugs, 1)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDrugsClientOmitsHeaderWithoutToken(t *testing.T) {
	var sawHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewDrugsClient(server.URL).List(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, sawHeader)
}

func TestDrugsClientStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrInvalidInput},
		{http.StatusUnauthorized, ErrUnauthenticated},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tc := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := NewDrugsClient(server.URL).Get(context.Background(), "tok", 1)
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		server.Close()
	}
}

func TestDrugsClientSearchEscapesQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]domain.Drug{})
	}))
	defer server.Close()

	_, err := NewDrugsClient(server.URL).Search(context.Background(), "tok", "aspirin 500 & co")
	require.NoError(t, err)
	assert.Equal(t, "aspirin 500 & co", gotQuery)
}
