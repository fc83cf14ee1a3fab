// Package apiclient is the typed HTTP client for the class API. It mirrors
// the REST surface one-to-one and converts failure responses into the
// apperror taxonomy so callers can branch with errors.Is instead of peeking
// at status codes.
//
// Every call is independent: no queuing, no deduplication, no retry. A failed
// call surfaces as an error for the user to act on.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tharindu/classtrack/internal/apperror"
	"github.com/tharindu/classtrack/internal/model"
	"github.com/tharindu/classtrack/internal/session"
)

// Client talks to the class API. The session provides the Authorization
// header; an unauthenticated session simply sends no header, which only the
// registration endpoint accepts.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
}

// New creates a client for the API at baseURL. httpClient may be nil.
func New(baseURL string, httpClient *http.Client, sess *session.Session) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: sess,
	}
}

// Register creates a staff account. Public endpoint.
func (c *Client) Register(ctx context.Context, username, password string) (*model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		model.Credentials{Username: username, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListClasses fetches the full catalog. Filtering and sorting are
// client-side concerns (catalog.View).
func (c *Client) ListClasses(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	if err := c.do(ctx, http.MethodGet, "/api/classes", nil, &classes); err != nil {
		return nil, err
	}
	if classes == nil {
		classes = []model.Class{}
	}
	return classes, nil
}

// GetClass fetches a single record.
func (c *Client) GetClass(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	if err := c.do(ctx, http.MethodGet, "/api/classes/"+id, nil, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

// CreateClass saves a new canonical record; the server assigns the ID.
func (c *Client) CreateClass(ctx context.Context, class model.Class) (*model.Class, error) {
	var created model.Class
	if err := c.do(ctx, http.MethodPost, "/api/classes", class, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateClass replaces the record with the given id.
func (c *Client) UpdateClass(ctx context.Context, id string, class model.Class) (*model.Class, error) {
	var updated model.Class
	if err := c.do(ctx, http.MethodPut, "/api/classes/"+id, class, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteClass removes the record with the given id.
func (c *Client) DeleteClass(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/classes/"+id, nil, nil)
}

// do runs one request: encode the body, attach auth, fire, decode the reply
// or translate the failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		c.session.Apply(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Unavailable(fmt.Sprintf("%s %s: %v", method, path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.asError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// errorBody is the API's error envelope ({"error": ..., "message": ...}).
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// asError converts a non-2xx response into an apperror. The upstream message
// is passed through unmodified; the status code picks the category.
func (c *Client) asError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<10))

	msg := strings.TrimSpace(string(raw))
	var envelope errorBody
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		msg = envelope.Message
	}
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperror.ValidationFailed("", msg)
	case http.StatusUnauthorized:
		return apperror.Unauthorized(msg)
	case http.StatusForbidden:
		return apperror.Forbidden(msg)
	case http.StatusNotFound:
		return &apperror.AppError{Err: apperror.ErrNotFound, Message: msg}
	case http.StatusConflict:
		return apperror.Conflict(msg)
	}
	return apperror.Unavailable(fmt.Sprintf("%d %s", resp.StatusCode, msg))
}
