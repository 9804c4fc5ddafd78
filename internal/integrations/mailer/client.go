package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging surface this client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client hands rendered message requests to the transactional mail
// provider. Calls are bounded by the configured timeout; a timeout counts
// as a failed send.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a mail provider client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send delivers one templated message. Returns ErrSendFailed on any
// delivery problem so dispatch jobs can record and retry.
func (c *Client) Send(ctx context.Context, msg Message) error {
	url := fmt.Sprintf("%s/messages", c.baseURL)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: to=%s template=%s: %v", ErrSendFailed, msg.To, msg.Template, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.Success {
		return fmt.Errorf("%w: to=%s template=%s: %s", ErrSendFailed, msg.To, msg.Template, result.Error)
	}

	return nil
}
