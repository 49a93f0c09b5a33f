package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hipstertrail/internal/adapter/backend"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/schema"
)

func serve(t *testing.T, body string, got *proxyRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		_, _ = w.Write([]byte(body))
	}))
}

func newBackend(t *testing.T, url string) *Backend {
	t.Helper()
	tr, err := backend.NewTransport(time.Second)
	if err != nil {
		t.Fatalf("NewTransport error: %v", err)
	}
	return New(Config{URL: url, APIKey: "local", Model: "tiny"}, tr, schema.MustLoad())
}

func TestGenerate_ReturnsResponse(t *testing.T) {
	var got proxyRequest
	srv := serve(t, `{"source":"model","data":{"response":"{\"name\":\"Fennel\"}"}}`, &got)
	defer srv.Close()

	content, err := newBackend(t, srv.URL).Generate(context.Background(), ports.TextRequest{Prompt: "name", System: "sys"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if content != `{"name":"Fennel"}` {
		t.Fatalf("content mismatch: got=%s", content)
	}
	if got.APIKey != "local" || got.Model != "tiny" || got.Prompt != "name" || got.Options.System != "sys" {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestGenerate_CacheHit(t *testing.T) {
	srv := serve(t, `{"source":"cache","data":{"response":"cached"}}`, nil)
	defer srv.Close()

	content, err := newBackend(t, srv.URL).Generate(context.Background(), ports.TextRequest{Prompt: "x"})
	if err != nil || content != "cached" {
		t.Fatalf("unexpected result: content=%q err=%v", content, err)
	}
}

func TestGenerate_BareResponse(t *testing.T) {
	srv := serve(t, `{"response":"{\"name\":\"Fennel\"}"}`, nil)
	defer srv.Close()

	content, err := newBackend(t, srv.URL).Generate(context.Background(), ports.TextRequest{Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got, want := content, `{"name":"Fennel"}`; got != want {
		t.Fatalf("content mismatch: got=%s want=%s", got, want)
	}
}

func TestGenerate_ErrorSourceFails(t *testing.T) {
	srv := serve(t, `{"source":"error","error":"model offline"}`, nil)
	defer srv.Close()

	_, err := newBackend(t, srv.URL).Generate(context.Background(), ports.TextRequest{Prompt: "x"})
	var backendErr *ports.BackendError
	if !errors.As(err, &backendErr) || backendErr.Body != "model offline" {
		t.Fatalf("expected BackendError carrying proxy message, got %v", err)
	}
}

func TestGenerate_MissingDataIsSchemaViolation(t *testing.T) {
	srv := serve(t, `{"source":"model"}`, nil)
	defer srv.Close()

	_, err := newBackend(t, srv.URL).Generate(context.Background(), ports.TextRequest{Prompt: "x"})
	if !errors.Is(err, ports.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestGenerate_Unconfigured(t *testing.T) {
	tr, _ := backend.NewTransport(time.Second)
	_, err := New(Config{}, tr, schema.MustLoad()).Generate(context.Background(), ports.TextRequest{Prompt: "x"})
	if !errors.Is(err, ports.ErrBackendNotConfigured) {
		t.Fatalf("expected ErrBackendNotConfigured, got %v", err)
	}
}
