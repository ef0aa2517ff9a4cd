package sossdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a SafePulse server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var out SignupResponse
	if err := c.do(ctx, http.MethodPost, "/signup", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, phone, pin string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", LoginRequest{Phone: phone, PIN: pin}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context, token, phone string) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/profile/"+url.PathEscape(phone), token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, req UpdateProfileRequest) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.do(ctx, http.MethodPatch, "/profile", token, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePIN(ctx context.Context, token, oldPIN, newPIN string) error {
	return c.do(ctx, http.MethodPut, "/profile/pin", token, ChangePINRequest{OldPIN: oldPIN, NewPIN: newPIN}, nil, http.StatusNoContent)
}

func (c *Client) SOS(ctx context.Context, token string, req SOSRequest) (*SOSResponse, error) {
	var out SOSResponse
	if err := c.do(ctx, http.MethodPost, "/sos", token, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls /health. A 200 with DB "error" is returned without error.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ready calls /readyz and fails with a 503 APIError while the store is down.
func (c *Client) Ready(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends body as JSON (when non-nil) and decodes a response with the
// expected status into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path, token string, body, out any, expected int) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expected {
		return parseErrorResponse(resp, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
