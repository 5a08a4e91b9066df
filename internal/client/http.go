package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/prideworks/marquee/internal/model"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// HTTPClient implements MarqueeClient using the marquee HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Events ---

func (c *HTTPClient) ListEvents(ctx context.Context) (*model.Document, error) {
	var doc model.Document
	if err := c.doJSON(ctx, http.MethodGet, "/v1/events", nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) AddEvent(ctx context.Context, req *AddEventRequest) (*Outcome, error) {
	return c.doOutcome(ctx, http.MethodPost, "/v1/events", req)
}

func (c *HTTPClient) RemoveEvent(ctx context.Context, id string) (*Outcome, error) {
	return c.doOutcome(ctx, http.MethodDelete, "/v1/events/"+url.PathEscape(id), nil)
}

func (c *HTTPClient) RetryPush(ctx context.Context) (*Outcome, error) {
	return c.doOutcome(ctx, http.MethodPost, "/v1/events/push", nil)
}

// --- Roles ---

func (c *HTTPClient) ListRoles(ctx context.Context, req *ListRolesRequest) ([]*model.Role, error) {
	q := url.Values{}
	if req != nil {
		if req.Team != "" {
			q.Set("team", req.Team)
		}
		if req.OpenOnly {
			q.Set("open", "true")
		}
		if req.Search != "" {
			q.Set("search", req.Search)
		}
	}
	path := "/v1/roles"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Roles []*model.Role `json:"roles"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Roles, nil
}

func (c *HTTPClient) CreateRole(ctx context.Context, req *CreateRoleRequest) (*model.Role, error) {
	var role model.Role
	if err := c.doJSON(ctx, http.MethodPost, "/v1/roles", req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *HTTPClient) GetRole(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	if err := c.doJSON(ctx, http.MethodGet, "/v1/roles/"+url.PathEscape(id), nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *HTTPClient) UpdateRole(ctx context.Context, id string, req *UpdateRoleRequest) (*model.Role, error) {
	var role model.Role
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/roles/"+url.PathEscape(id), req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *HTTPClient) DeleteRole(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/roles/"+url.PathEscape(id), nil, nil)
}

// --- Applications ---

func (c *HTTPClient) ListApplications(ctx context.Context, roleID string) ([]*model.Application, error) {
	var resp struct {
		Applications []*model.Application `json:"applications"`
	}
	path := "/v1/roles/" + url.PathEscape(roleID) + "/applications"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Applications, nil
}

func (c *HTTPClient) Apply(ctx context.Context, roleID string, req *ApplyRequest) (*model.Application, error) {
	var app model.Application
	path := "/v1/roles/" + url.PathEscape(roleID) + "/applications"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *HTTPClient) SetApplicationStatus(ctx context.Context, id, status string) (*model.Application, error) {
	var app model.Application
	path := "/v1/applications/" + url.PathEscape(id) + "/status"
	if err := c.doJSON(ctx, http.MethodPost, path, map[string]string{"status": status}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// doOutcome performs a mutation request and decodes the outcome body. Unlike
// doJSON it tolerates non-2xx statuses: the server reports failed mutations
// with an error status but still carries the terminal state in the body.
func (c *HTTPClient) doOutcome(ctx context.Context, method, path string, body any) (*Outcome, error) {
	status, respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var out Outcome
	if json.Unmarshal(respBody, &out) == nil && out.State != "" {
		return &out, nil
	}

	if status >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, &APIError{StatusCode: status, Message: errResp.Error}
		}
		return nil, &APIError{StatusCode: status, Message: string(respBody)}
	}
	return nil, fmt.Errorf("decoding outcome: unexpected body %q", respBody)
}

// doJSON performs a request and decodes a 2xx response into result. Non-2xx
// responses become an *APIError.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	status, respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	if status == http.StatusNoContent {
		return nil
	}

	if status >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: status, Message: errResp.Error}
		}
		return &APIError{StatusCode: status, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
