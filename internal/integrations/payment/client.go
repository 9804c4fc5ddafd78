package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Logger is the logging surface this client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the payment gateway. Every call is bounded by the
// configured timeout; a timeout classifies the call as failed, never
// leaves it pending.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a payment gateway client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// IssueRefund commands the gateway to return the given amount.
// Returns ErrUnavailable on transport failures (retryable) and
// ErrRefundRejected when the gateway refuses.
func (c *Client) IssueRefund(ctx context.Context, cmd RefundCommand) error {
	url := fmt.Sprintf("%s/refunds", c.baseURL)

	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("%w: failed to encode refund command: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			c.log.Error("IssueRefund: gateway timed out for reservation_id=%d", cmd.ReservationID)
		}
		return fmt.Errorf("%w: reservation_id=%d: %v", ErrUnavailable, cmd.ReservationID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnprocessableEntity, http.StatusConflict:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: reservation_id=%d: %s", ErrRefundRejected, cmd.ReservationID, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	var result RefundResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.Success {
		return fmt.Errorf("%w: reservation_id=%d: %s", ErrRefundRejected, cmd.ReservationID, result.Error)
	}

	c.log.Info("IssueRefund: gateway accepted refund for reservation_id=%d amount=%s",
		cmd.ReservationID, cmd.Amount.String())
	return nil
}
