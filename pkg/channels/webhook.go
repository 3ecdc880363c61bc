package channels

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/itristenx/nova-notify/pkg/event"
)

// WebhookSender posts events as signed JSON to a fixed endpoint. The
// webhook channel ships as a stub by default; hosts that already have an
// endpoint can register this sender instead and receive real deliveries.
type WebhookSender struct {
	url    string
	secret string
	client *http.Client
}

// WebhookSenderOption configures a WebhookSender.
type WebhookSenderOption func(*WebhookSender)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) WebhookSenderOption {
	return func(s *WebhookSender) {
		if client != nil {
			s.client = client
		}
	}
}

// NewWebhookSender creates a webhook sender posting to url. When secret is
// non-empty every request carries an HMAC-SHA256 signature bound to a
// timestamp, in the scheme used by common webhook providers.
func NewWebhookSender(url, secret string, opts ...WebhookSenderOption) *WebhookSender {
	s := &WebhookSender{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WebhookSender) Channel() string { return ChannelWebhook }

type webhookPayload struct {
	UserID string      `json:"userId"`
	Event  event.Event `json:"event"`
}

func (s *WebhookSender) Send(ctx context.Context, userID string, ev event.Event) error {
	body, err := json.Marshal(webhookPayload{UserID: userID, Event: ev})
	if err != nil {
		return fmt.Errorf("channels: webhook marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("channels: webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if s.secret != "" {
		ts := time.Now().Unix()
		// Signature bound to the timestamp to prevent replay.
		mac := hmac.New(sha256.New, []byte(s.secret))
		fmt.Fprintf(mac, "%d.%s", ts, body)
		req.Header.Set("X-Webhook-Signature", hex.EncodeToString(mac.Sum(nil)))
		req.Header.Set("X-Webhook-Timestamp", strconv.FormatInt(ts, 10))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("channels: webhook post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("channels: webhook post: unexpected status %d", resp.StatusCode)
	}
	return nil
}
