package backend

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hipstertrail/internal/app/ports"
)

func TestPostJSON_Success(t *testing.T) {
	var gotBody, gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr, err := NewTransport(time.Second)
	if err != nil {
		t.Fatalf("NewTransport error: %v", err)
	}
	out, err := tr.PostJSON(context.Background(), "test", srv.URL, map[string]string{"Authorization": "Bearer k"}, map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("PostJSON error: %v", err)
	}
	if string(out) != `{"ok":true}` {
		t.Fatalf("body mismatch: got=%s", out)
	}
	if gotBody != `{"a":1}` || gotAuth != "Bearer k" || gotType != "application/json" {
		t.Fatalf("unexpected request: body=%s auth=%s type=%s", gotBody, gotAuth, gotType)
	}
}

func TestPostJSON_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	tr, _ := NewTransport(time.Second)
	_, err := tr.PostJSON(context.Background(), "test", srv.URL, nil, struct{}{})
	var backendErr *ports.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if backendErr.Status != http.StatusTooManyRequests || backendErr.Body != "slow down" {
		t.Fatalf("unexpected backend error: %+v", backendErr)
	}
	if !errors.Is(err, ports.ErrHTTPStatus) {
		t.Fatalf("expected ErrHTTPStatus in chain")
	}
}

func TestPostJSON_TimeoutIsNetworkFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	tr, _ := NewTransport(50 * time.Millisecond)
	_, err := tr.PostJSON(context.Background(), "test", srv.URL, nil, struct{}{})
	if !errors.Is(err, ports.ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
}

func TestPostJSON_CancelledContext(t *testing.T) {
	tr, _ := NewTransport(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.PostJSON(ctx, "test", "http://127.0.0.1:1", nil, struct{}{})
	if !errors.Is(err, ports.ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
}

func TestPostJSON_HTTPS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"secure":true}`))
	}))
	defer srv.Close()

	trusted := srv.Client().Transport.(*http.Transport).TLSClientConfig.Clone()
	trusted.MinVersion = tls.VersionTLS12
	tr, err := NewTransport(time.Second, WithTLSConfig(trusted))
	if err != nil {
		t.Fatalf("NewTransport error: %v", err)
	}
	out, err := tr.PostJSON(context.Background(), "chat", srv.URL, nil, map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("PostJSON over TLS error: %v", err)
	}
	if got, want := string(out), `{"secure":true}`; got != want {
		t.Fatalf("body mismatch: got=%s want=%s", got, want)
	}
}

func TestPostJSON_HTTPSUntrustedCertificateIsNetworkFailure(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr, err := NewTransport(time.Second)
	if err != nil {
		t.Fatalf("NewTransport error: %v", err)
	}
	_, err = tr.PostJSON(context.Background(), "chat", srv.URL, nil, map[string]any{})
	if !errors.Is(err, ports.ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
}
