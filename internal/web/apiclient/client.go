// Package apiclient holds the typed HTTP clients the front end uses to talk
// to the auth and drugs services. Calls carry the session's bearer token
// when one exists; without a token the request is sent as-is and the
// resource gate decides.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrConflict           = errors.New("username already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("not authorized")
	ErrNotFound           = errors.New("not found")
)

const defaultTimeout = 10 * time.Second

// AuthClient calls the identity service.
type AuthClient struct {
	baseURL string
	client  *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type RegisterResult struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (c *AuthClient) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var result LoginResult
	err := c.post(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, http.StatusOK, &result)
	if errors.Is(err, ErrUnauthenticated) {
		return LoginResult{}, ErrInvalidCredentials
	}
	return result, err
}

func (c *AuthClient) Register(ctx context.Context, username, password, role string) (RegisterResult, error) {
	var result RegisterResult
	err := c.post(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"password": password,
		"role":     role,
	}, http.StatusCreated, &result)
	return result, err
}

func (c *AuthClient) post(ctx context.Context, path string, body any, wantStatus int, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call auth service: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != wantStatus {
		return statusError(resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode auth response: %w", err)
	}
	return nil
}

// DrugsClient calls the drug catalog service. The token is supplied per
// call because it belongs to the browser session, not the client.
type DrugsClient struct {
	baseURL string
	client  *http.Client
}

func NewDrugsClient(baseURL string) *DrugsClient {
	return &DrugsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (c *DrugsClient) List(ctx context.Context, token string) ([]domain.Drug, error) {
	var drugs []domain.Drug
	err := c.do(ctx, http.MethodGet, "/api/drugs", token, nil, http.StatusOK, &drugs)
	return drugs, err
}

func (c *DrugsClient) Search(ctx context.Context, token, query string) ([]domain.Drug, error) {
	var drugs []domain.Drug
	path := "/api/drugs/search?query=" + url.QueryEscape(query)
	err := c.do(ctx, http.MethodGet, path, token, nil, http.StatusOK, &drugs)
	return drugs, err
}

func (c *DrugsClient) Get(ctx context.Context, token string, id int64) (domain.Drug, error) {
	var drug domain.Drug
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/drugs/%d", id), token, nil, http.StatusOK, &drug)
	return drug, err
}

func (c *DrugsClient) Create(ctx context.Context, token string, drug domain.Drug) (domain.Drug, error) {
	var created domain.Drug
	err := c.do(ctx, http.MethodPost, "/api/drugs", token, drug, http.StatusCreated, &created)
	return created, err
}

func (c *DrugsClient) Update(ctx context.Context, token string, drug domain.Drug) error {
	path := fmt.Sprintf("/api/drugs/%d", drug.ID)
	return c.do(ctx, http.MethodPut, path, token, drug, http.StatusNoContent, nil)
}

func (c *DrugsClient) Delete(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/drugs/%d", id), token, nil, http.StatusNoContent, nil)
}

func (c *DrugsClient) do(ctx context.Context, method, path, token string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call drugs service: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != wantStatus {
		return statusError(resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode drugs response: %w", err)
		}
	}
	return nil
}

func statusError(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrInvalidInput
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return fmt.Errorf("unexpected status %d", status)
	}
}

// drain reads the remainder so the underlying connection can be reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<16))
	_ = body.Close()
}

