package sms

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const telesignEndpoint = "https://rest-api.telesign.com/v1/messaging"

// E.164: leading +, 8-15 digits total.
var e164 = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// Service delivers a single SMS message.
type Service interface {
	Send(ctx context.Context, to, body string) error
}

type Config struct {
	CustomerID  string `mapstructure:"customer_id"`
	APIKey      string `mapstructure:"api_key"`
	SenderID    string `mapstructure:"sender_id"`
	MessageType string `mapstructure:"message_type"`
}

type telesignService struct {
	cfg    Config
	client *http.Client
}

func NewTelesignService(cfg Config) Service {
	if cfg.MessageType == "" {
		cfg.MessageType = "ARN"
	}
	return &telesignService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *telesignService) Send(ctx context.Context, to, body string) error {
	if s.cfg.CustomerID == "" || s.cfg.APIKey == "" {
		return fmt.Errorf("telesign not configured")
	}
	if !e164.MatchString(to) {
		return fmt.Errorf("invalid E.164 destination number: %s", to)
	}

	form := url.Values{}
	form.Set("phone_number", to)
	form.Set("message", body)
	form.Set("message_type", s.cfg.MessageType)
	if s.cfg.SenderID != "" {
		form.Set("sender_id", s.cfg.SenderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, telesignEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(s.cfg.CustomerID + ":" + s.cfg.APIKey))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
