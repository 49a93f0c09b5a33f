// Package proxy calls the local small-model proxy/cache.
package proxy

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"hipstertrail/internal/adapter/backend"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/schema"
)

const BackendName = "proxy"

// statusUpstreamFailure is reported when the proxy answers 200 with
// source "error".
const statusUpstreamFailure = 502

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
	return &Backend{cfg: cfg, transport: transport, schemas: schemas}
}

func (b *Backend) Name() string { return BackendName }

type options struct {
	System      string  `json:"system,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type proxyRequest struct {
	APIKey  string  `json:"apiKey"`
	Model   string  `json:"model,omitempty"`
	Prompt  string  `json:"prompt"`
	Options options `json:"options"`
}

func (b *Backend) Generate(ctx context.Context, req ports.TextRequest) (string, error) {
	if strings.TrimSpace(b.cfg.URL) == "" || strings.TrimSpace(b.cfg.APIKey) == "" {
		return "", fmt.Errorf("%s: %w", BackendName, ports.ErrBackendNotConfigured)
	}
	raw, err := b.transport.PostJSON(ctx, BackendName, b.cfg.URL, nil, proxyRequest{
		APIKey:  b.cfg.APIKey,
		Model:   b.cfg.Model,
		Prompt:  req.Prompt,
		Options: options{System: req.System, Temperature: req.Temperature},
	})
	if err != nil {
		return "", err
	}
	if _, err := b.schemas.ValidateJSON(schema.Proxy, raw); err != nil {
		return "", fmt.Errorf("%s: %w", BackendName, err)
	}

	parsed := gjson.ParseBytes(raw)
	if parsed.Get("source").String() == "error" {
		msg := parsed.Get("error").String()
		if msg == "" {
			msg = "proxy reported an error"
		}
		return "", &ports.BackendError{Backend: BackendName, Status: statusUpstreamFailure, Body: msg}
	}
	// The small-model proxy answers a bare {response}; the cache wraps it.
	if data := parsed.Get("data.response"); data.Exists() {
		return data.String(), nil
	}
	return parsed.Get("response").String(), nil
}
