// Package gemini adapts the Google Generative AI client to a text backend.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"hipstertrail/internal/app/ports"
)

const (
	BackendName  = "gemini"
	DefaultModel = "gemini-1.5-flash"
)

type Backend struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Backend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%s: %w", BackendName, ports.ErrBackendNotConfigured)
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%s: create client: %w", BackendName, err)
	}
	return &Backend{client: client, model: model}, nil
}

func (b *Backend) Name() string { return BackendName }

func (b *Backend) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}

// Generate builds a fresh model handle per call; handles carry the system
// instruction and are not safe to share across goroutines once mutated.
func (b *Backend) Generate(ctx context.Context, req ports.TextRequest) (string, error) {
	m := b.client.GenerativeModel(b.model)
	m.ResponseMIMEType = "application/json"
	if req.Temperature > 0 {
		m.SetTemperature(float32(req.Temperature))
	}
	if req.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", BackendName, ports.ErrNetworkFailure, err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%s: %w: empty candidate", BackendName, ports.ErrMalformedPayload)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
