package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender delivers one message on one channel. Implementations are independent
// of each other: an unavailable gateway fails its own sends only.
type Sender interface {
	Send(ctx context.Context, address, subject, body string) error
}

// gatewaySender posts form-encoded messages to a channel gateway over HTTP.
// Real provider integrations are out of scope; the gateway endpoints are
// configured per deployment and may point at a stub.
type gatewaySender struct {
	endpoint string
	client   *http.Client
}

func newGatewaySender(endpoint string, timeout time.Duration) *gatewaySender {
	return &gatewaySender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *gatewaySender) Send(ctx context.Context, address, subject, body string) error {
	params := url.Values{}
	params.Add("to", address)
	if subject != "" {
		params.Add("subject", subject)
	}
	params.Add("body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway error: %s", resp.Status)
	}
	return nil
}

func NewEmailSender(endpoint string, timeout time.Duration) Sender {
	return newGatewaySender(endpoint, timeout)
}

func NewSMSSender(endpoint string, timeout time.Duration) Sender {
	return newGatewaySender(endpoint, timeout)
}

func NewPushSender(endpoint string, timeout time.Duration) Sender {
	return newGatewaySender(endpoint, timeout)
}
