// Package agencyclient is an HTTP implementation of messaging.Transport,
// speaking JSON-over-HTTP to an agency's message endpoints.
package agencyclient

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

	"github.com/aries-go/vcprover/pkg/messaging"
)

// Client is the agency's message-retrieval HTTP client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a Client against baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithToken returns a copy of the client authenticating with token.
func (c *Client) WithToken(token string) *Client {
	return &Client{baseURL: c.baseURL, httpClient: c.httpClient, token: token}
}

// APIError is the agency's error response shape.
type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &apiErr
		}
		return &APIError{Message: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

type downloadResponse struct {
	Messages []messageEnvelope `json:"messages"`
}

type messageEnvelope struct {
	UID       string          `json:"uid"`
	Decrypted json.RawMessage `json:"decrypted_msg"`
}

// DownloadMessages implements messaging.Transport.
func (c *Client) DownloadMessages(ctx context.Context, dids, statuses, uids []string) ([]messaging.DownloadedMessage, error) {
	q := url.Values{}
	if len(dids) > 0 {
		q.Set("dids", strings.Join(dids, ","))
	}
	if len(statuses) > 0 {
		q.Set("statuses", strings.Join(statuses, ","))
	}
	if len(uids) > 0 {
		q.Set("uids", strings.Join(uids, ","))
	}

	var resp downloadResponse
	if err := c.do(ctx, http.MethodGet, "/v1/agency/messages?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	out := make([]messaging.DownloadedMessage, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		out = append(out, messaging.DownloadedMessage{UID: m.UID, Decrypted: m.Decrypted})
	}
	return out, nil
}

// UpdateMessageStatus implements messaging.Transport.
func (c *Client) UpdateMessageStatus(ctx context.Context, connectionHandle, uid string) error {
	path := fmt.Sprintf("/v1/agency/connections/%s/messages/%s/status", url.PathEscape(connectionHandle), url.PathEscape(uid))
	return c.do(ctx, http.MethodPut, path, map[string]string{"status": "reviewed"}, nil)
}
