package ports

import "context"

type TextRequest struct {
	System      string
	Prompt      string
	Temperature float64
}

// TextBackend returns the raw content a model produced for a prompt. The
// content is expected to hold one JSON object, possibly wrapped in prose,
// markdown fences or a JSON string.
type TextBackend interface {
	Name() string
	Generate(ctx context.Context, req TextRequest) (string, error)
}

type ImageRequest struct {
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
}

// ImageBackend returns a data URI or URL for the generated image.
type ImageBackend interface {
	Name() string
	Generate(ctx context.Context, req ImageRequest) (string, error)
}
