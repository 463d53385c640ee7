package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client calls the lead endpoints of a running server. It satisfies the
// wizard's sink so a terminal wizard can submit to a remote site.
type Client struct {
	baseURL    string
	adminToken string
	http       *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithAdminToken sets the bearer token used by List.
func WithAdminToken(token string) ClientOption {
	return func(c *Client) { c.adminToken = token }
}

// WithHTTPClient replaces the default client. Requests are bounded only by
// their context unless hc sets a timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitLead posts the record to /api/leads.
func (c *Client) SubmitLead(ctx context.Context, rec Record) error {
	_, err := c.Create(ctx, rec)
	return err
}

// Create posts the record and returns the stored lead.
func (c *Client) Create(ctx context.Context, rec Record) (*Lead, error) {
	body, err := json.Marshal(CreateLeadRequest{
		Name:     rec.Name,
		Email:    rec.Email,
		Interest: string(rec.Interest),
	})
	if err != nil {
		return nil, fmt.Errorf("leads: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/leads", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("leads: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var lead Lead
	if err := c.do(req, http.StatusCreated, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// List fetches a page from /admin/leads.
func (c *Client) List(ctx context.Context, filter ListFilter) (*ListLeadsResponse, error) {
	q := url.Values{}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}
	if filter.Interest != "" {
		q.Set("interest", string(filter.Interest))
	}
	endpoint := c.baseURL + "/admin/leads"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("leads: build request: %w", err)
	}
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	var resp ListLeadsResponse
	if err := c.do(req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StatusError is a non-success reply from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("leads: server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("leads: server returned %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leads: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leads: decode response: %w", err)
	}
	return nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
