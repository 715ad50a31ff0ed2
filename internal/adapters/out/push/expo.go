// Package push delivers notifications through the Expo push service,
// which forwards them to APNs/FCM for the mobile app.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// DefaultEndpoint is Expo's push API; overridable for tests.
const DefaultEndpoint = "https://exp.host/--/api/v2/push/send"

// expoMessage is the provider's wire format for one notification.
type expoMessage struct {
	To    string            `json:"to"`
	Sound string            `json:"sound"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// ExpoClient implements ports.PushGateway against the Expo push API.
type ExpoClient struct {
	httpClient *http.Client
	endpoint   string
}

// NewExpoClient creates a client for the given endpoint; an empty
// endpoint selects the production API.
func NewExpoClient(endpoint string) *ExpoClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &ExpoClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
	}
}

// ValidToken reports whether the token looks like an Expo push token.
func (c *ExpoClient) ValidToken(token string) bool {
	if !strings.HasSuffix(token, "]") {
		return false
	}
	return strings.HasPrefix(token, "ExponentPushToken[") ||
		strings.HasPrefix(token, "ExpoPushToken[")
}

// Send posts one batch to the push API. Callers keep batches at or below
// the provider's 100-message limit.
func (c *ExpoClient) Send(ctx context.Context, messages []ports.PushMessage) error {
	if len(messages) == 0 {
		return nil
	}

	payload := make([]expoMessage, 0, len(messages))
	for _, m := range messages {
		payload = append(payload, expoMessage{
			To:    m.Token,
			Sound: "default",
			Title: m.Title,
			Body:  m.Body,
			Data:  m.Data,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewUpstreamFailureError("expo", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errs.NewUpstreamFailureError("expo",
			fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	}

	return nil
}
