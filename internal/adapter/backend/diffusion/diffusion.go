// Package diffusion calls a local stable-diffusion style txt2img server.
package diffusion

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
	BackendName = "diffusion"
	dataURIPNG  = "data:image/png;base64,"
)

// Config carries the sampler settings sent with every request.
type Config struct {
	URL            string
	Steps          int
	CFGScale       float64
	Width          int
	Height         int
	Sampler        string
	NegativePrompt string
	Checkpoint     string
}

func DefaultConfig(url string) Config {
	return Config{
		URL:            url,
		Steps:          20,
		CFGScale:       7,
		Width:          512,
		Height:         512,
		Sampler:        "Euler a",
		NegativePrompt: "blurry, low quality, watermark, text",
	}
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

type txt2img struct {
	Prompt           string         `json:"prompt"`
	NegativePrompt   string         `json:"negative_prompt"`
	Steps            int            `json:"steps"`
	CFGScale         float64        `json:"cfg_scale"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	SamplerName      string         `json:"sampler_name"`
	OverrideSettings map[string]any `json:"override_settings"`
}

func (b *Backend) Generate(ctx context.Context, req ports.ImageRequest) (string, error) {
	if strings.TrimSpace(b.cfg.URL) == "" {
		return "", fmt.Errorf("%s: %w", BackendName, ports.ErrBackendNotConfigured)
	}
	body := txt2img{
		Prompt:           req.Prompt,
		NegativePrompt:   b.cfg.NegativePrompt,
		Steps:            b.cfg.Steps,
		CFGScale:         b.cfg.CFGScale,
		Width:            b.cfg.Width,
		Height:           b.cfg.Height,
		SamplerName:      b.cfg.Sampler,
		OverrideSettings: map[string]any{},
	}
	if req.NegativePrompt != "" {
		body.NegativePrompt = req.NegativePrompt
	}
	if req.Width > 0 && req.Height > 0 {
		body.Width, body.Height = req.Width, req.Height
	}
	if b.cfg.Checkpoint != "" {
		body.OverrideSettings["sd_model_checkpoint"] = b.cfg.Checkpoint
	}

	raw, err := b.transport.PostJSON(ctx, BackendName, b.cfg.URL, nil, body)
	if err != nil {
		return "", err
	}
	if _, err := b.schemas.ValidateJSON(schema.Diffusion, raw); err != nil {
		return "", fmt.Errorf("%s: %w", BackendName, err)
	}
	img := gjson.GetBytes(raw, "images.0").String()
	if img == "" {
		return "", fmt.Errorf("%s: %w: empty image", BackendName, ports.ErrMalformedPayload)
	}
	if strings.HasPrefix(img, "data:") {
		return img, nil
	}
	return dataURIPNG + img, nil
}
