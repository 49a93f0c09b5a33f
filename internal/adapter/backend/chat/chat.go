// Package chat calls an OpenAI-style chat-completion proxy.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"hipstertrail/internal/adapter/backend"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/schema"
)

const (
	BackendName        = "chat"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.9
)

type Config struct {
	URL    string
	APIKey string
	Model  string
}

type Backend struct {
	cfg       Config
	transport *backend.Transport
	schemas   *schema.Validator
}

func New(cfg Config, transport *backend.Transport, schemas *schema.Validator) *Backend {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Backend{cfg: cfg, transport: transport, schemas: schemas}
}

func (b *Backend) Name() string { return BackendName }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

func (b *Backend) Generate(ctx context.Context, req ports.TextRequest) (string, error) {
	if strings.TrimSpace(b.cfg.URL) == "" || strings.TrimSpace(b.cfg.APIKey) == "" {
		return "", fmt.Errorf("%s: %w", BackendName, ports.ErrBackendNotConfigured)
	}
	body := completionRequest{Model: b.cfg.Model, Temperature: req.Temperature}
	if body.Temperature == 0 {
		body.Temperature = DefaultTemperature
	}
	if req.System != "" {
		body.Messages = append(body.Messages, message{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, message{Role: "user", Content: req.Prompt})

	raw, err := b.transport.PostJSON(ctx, BackendName, b.cfg.URL, map[string]string{
		"Authorization": "Bearer " + b.cfg.APIKey,
	}, body)
	if err != nil {
		return "", err
	}
	if _, err := b.schemas.ValidateJSON(schema.ChatCompletion, raw); err != nil {
		return "", fmt.Errorf("%s: %w", BackendName, err)
	}
	return gjson.GetBytes(raw, "choices.0.message.content").String(), nil
}
