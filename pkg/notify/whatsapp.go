package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// WhatsAppConfig configures the HTTP gateway used for WhatsApp messages
type WhatsAppConfig struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// WhatsAppSender posts messages to a WhatsApp gateway's /send endpoint
type WhatsAppSender struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type whatsAppMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewWhatsAppSender creates a sender. Without an API key the sender only
// logs what it would have sent and reports success.
func NewWhatsAppSender(cfg WhatsAppConfig) *WhatsAppSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WhatsAppSender{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Send delivers one text message
func (s *WhatsAppSender) Send(ctx context.Context, to, message string) error {
	if s.apiKey == "" {
		log.Printf("[whatsapp] API not configured, simulated message to %s: %q", to, message)
		return nil
	}

	body, err := json.Marshal(whatsAppMessage{To: to, Message: message, Type: "text"})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: send: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("whatsapp: gateway returned %d: %s", res.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
