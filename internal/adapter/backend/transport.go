// Package backend holds the HTTP plumbing shared by the AI backend adapters.
package backend

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"hipstertrail/internal/app/ports"
)

const (
	DefaultDialTimeout = 5 * time.Second
	maxErrorBody       = 512
)

// Transport issues one uncached JSON POST per call with a per-call timeout.
type Transport struct {
	client  *client.Client
	timeout time.Duration
}

type Option func(*options)

type options struct {
	tls *tls.Config
}

// WithTLSConfig replaces the default TLS 1.2+ client configuration.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) { o.tls = cfg }
}

// NewTransport uses the standard net dialer: the netpoll default cannot
// speak TLS and the chat backend is HTTPS.
func NewTransport(timeout time.Duration, opts ...Option) (*Transport, error) {
	o := options{tls: &tls.Config{MinVersion: tls.VersionTLS12}}
	for _, opt := range opts {
		opt(&o)
	}
	c, err := client.NewClient(
		client.WithDialer(standard.NewDialer()),
		client.WithTLSConfig(o.tls),
		client.WithDialTimeout(DefaultDialTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("build hertz client: %w", err)
	}
	return &Transport{client: c, timeout: timeout}, nil
}

// PostJSON returns the body of a 2xx answer. Transport errors and timeouts
// wrap ports.ErrNetworkFailure; other statuses are *ports.BackendError.
func (t *Transport) PostJSON(ctx context.Context, backend, url string, headers map[string]string, body any) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", backend, err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.SetMethod(consts.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.SetBody(encoded)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", backend, ports.ErrNetworkFailure, err)
	}
	timeout := t.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if timeout > 0 {
		err = t.client.DoTimeout(ctx, req, resp, timeout)
	} else {
		err = t.client.Do(ctx, req, resp)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", backend, ports.ErrNetworkFailure, err)
	}

	out := append([]byte(nil), resp.Body()...)
	if status := resp.StatusCode(); status < consts.StatusOK || status >= consts.StatusMultipleChoices {
		return nil, &ports.BackendError{Backend: backend, Status: status, Body: truncate(string(out))}
	}
	return out, nil
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody]
}
