// Package aicall turns a raw text backend into a typed, schema-checked
// generator.
package aicall

import (
	"context"
	"encoding/json"
	"fmt"

	"hipstertrail/internal/app/payload"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/schema"
)

// InvokeJSON calls backend once, recovers the JSON object from its output,
// validates it against schemaName and decodes it into T. Every failure maps
// onto the ports error taxonomy.
func InvokeJSON[T any](ctx context.Context, backend ports.TextBackend, schemas *schema.Validator, schemaName string, req ports.TextRequest) (T, error) {
	var zero T
	if backend == nil {
		return zero, ports.ErrBackendNotConfigured
	}
	content, err := backend.Generate(ctx, req)
	if err != nil {
		return zero, err
	}
	raw, err := payload.Object(content)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", backend.Name(), err)
	}
	if _, err := schemas.ValidateJSON(schemaName, raw); err != nil {
		return zero, fmt.Errorf("%s: %w", backend.Name(), err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%s: %w: %v", backend.Name(), ports.ErrMalformedPayload, err)
	}
	return out, nil
}

// InvokeImage calls an image backend once.
func InvokeImage(ctx context.Context, backend ports.ImageBackend, req ports.ImageRequest) (string, error) {
	if backend == nil {
		return "", ports.ErrBackendNotConfigured
	}
	img, err := backend.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if img == "" {
		return "", fmt.Errorf("%s: %w: empty image", backend.Name(), ports.ErrMalformedPayload)
	}
	return img, nil
}
