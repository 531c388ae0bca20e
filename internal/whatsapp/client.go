// Package whatsapp talks to the WhatsApp Cloud API: it sends outbound
// messages through the Graph API and decodes inbound webhook payloads
// into the application's event model.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/isufellowship/attendance-bot/internal/model"
)

// Config holds the Cloud API client settings.
type Config struct {
	BaseURL       string
	AccessToken   string
	PhoneNumberID string
}

// Client sends messages through the Graph API. Delivery is
// fire-and-forget from the caller's perspective: the response is logged
// and a non-2xx status is returned as an error the callers only log.
type Client struct {
	http   *http.Client
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a Graph API client. The access token rides on every
// request via an oauth2 static token source.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 15 * time.Second

	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: logger,
	}
}

// SendText delivers a plain text message to one recipient.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": body},
	}
	return c.post(ctx, payload)
}

// SendButtons delivers an interactive reply-button prompt.
func (c *Client) SendButtons(ctx context.Context, to, body string, options []model.ButtonOption) error {
	buttons := make([]map[string]any, 0, len(options))
	for _, opt := range options {
		buttons = append(buttons, map[string]any{
			"type": "reply",
			"reply": map[string]string{
				"id":    opt.ID,
				"title": opt.Label,
			},
		})
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]string{"text": body},
			"action": map[string]any{"buttons": buttons},
		},
	}
	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.cfg.BaseURL, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("whatsapp: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: sending message: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	c.logger.Info("send message response",
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(respBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("whatsapp: graph api returned status %d", resp.StatusCode)
	}

	return nil
}
