package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sink receives forwarded entries.
type Sink interface {
	Send(ctx context.Context, e Entry) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Entry) error

// Send calls f.
func (f SinkFunc) Send(ctx context.Context, e Entry) error {
	return f(ctx, e)
}

// HTTPSink posts entries as JSON with a bearer token.
type HTTPSink struct {
	client   *http.Client
	endpoint string
	token    string
}

// NewHTTPSink creates a sink for endpoint. A zero timeout leaves requests bounded only by ctx.
func NewHTTPSink(endpoint, token string, timeout time.Duration) *HTTPSink {
	return &HTTPSink{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		token:    token,
	}
}

// Send posts e and treats any non-2xx status as an error.
func (s *HTTPSink) Send(ctx context.Context, e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("audit service responded %d", resp.StatusCode)
	}
	return nil
}
