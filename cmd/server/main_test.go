package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	memrepo "hipstertrail/internal/adapter/repo/memory"
	"hipstertrail/internal/app/schema"
	"hipstertrail/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildAudit_InMemoryWithoutDSN(t *testing.T) {
	audit := buildAudit(context.Background(), config.Config{}, discardLogger())
	if _, ok := audit.(memrepo.GenerationLogRepo); !ok {
		t.Fatalf("expected in-memory audit without DSN, got %T", audit)
	}
}

func TestMustBuildBackends_UnconfiguredStillBuilds(t *testing.T) {
	t.Setenv("HIPSTER_TRAIL_GEMINI_KEY", "")
	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	b := mustBuildBackends(context.Background(), cfg, schema.MustLoad(), discardLogger())
	if b.Chat == nil || b.Proxy == nil || b.Diffusion == nil {
		t.Fatalf("expected http backends to be built: %+v", b)
	}
	if b.Gemini != nil {
		t.Fatalf("gemini must stay unset without a key")
	}
	if got, want := b.Chat.Name(), "chat"; got != want {
		t.Fatalf("chat backend name mismatch: got=%q want=%q", got, want)
	}
}
