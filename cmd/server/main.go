package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/cloudwego/hertz/pkg/app/server"

	"hipstertrail/internal/adapter/backend"
	"hipstertrail/internal/adapter/backend/chat"
	"hipstertrail/internal/adapter/backend/diffusion"
	"hipstertrail/internal/adapter/backend/gemini"
	"hipstertrail/internal/adapter/backend/proxy"
	"hipstertrail/internal/adapter/events"
	"hipstertrail/internal/adapter/events/archive"
	"hipstertrail/internal/adapter/events/memory"
	httpadapter "hipstertrail/internal/adapter/http"
	metricsinmem "hipstertrail/internal/adapter/metrics/inmemory"
	gormrepo "hipstertrail/internal/adapter/repo/gorm"
	memrepo "hipstertrail/internal/adapter/repo/memory"
	"hipstertrail/internal/adapter/ws"
	"hipstertrail/internal/app/character"
	"hipstertrail/internal/app/choose"
	"hipstertrail/internal/app/fallback"
	"hipstertrail/internal/app/generate"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/prompt"
	"hipstertrail/internal/app/schema"
	"hipstertrail/internal/app/turn"
	"hipstertrail/internal/app/upcycle"
	"hipstertrail/internal/content"
	"hipstertrail/internal/platform/config"
	"hipstertrail/internal/platform/otel"
)

const serviceName = "hipster-trail"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	shutdownTracing, err := otel.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}

	schemas := schema.MustLoad()
	backends := mustBuildBackends(ctx, cfg, schemas, logger)

	ring := memory.NewRing(cfg.EventBuffer)
	sinks := events.Fanout{ring}
	var archiveWriter *archive.Writer
	if cfg.EventArchiveDir != "" {
		archiveWriter = archive.NewWriter(cfg.EventArchiveDir, logger)
		sinks = append(sinks, archiveWriter)
	}

	kpiRecorder := metricsinmem.NewRecorder()
	audit := buildAudit(ctx, cfg, logger)

	observer := fallback.Observer{Logger: logger, Events: sinks, Metrics: kpiRecorder, Audit: audit}

	gens := &generate.Generators{
		Backends: backends,
		Schemas:  schemas,
		Prompts:  prompt.MustRenderer(),
		Catalog:  content.MustDefault(),
		Observer: observer,
	}

	h := httpadapter.Handler{
		TurnUC:      turn.UseCase{Generator: gens, Observer: observer},
		ChooseUC:    choose.UseCase{},
		UpcycleUC:   upcycle.UseCase{Generator: gens, Observer: observer},
		CharacterUC: character.UseCase{Generator: gens},
		Events:      ring,
		Audit:       audit,
		KPI:         kpiRecorder,
		AllowOrigin: cfg.CORSOrigin,
	}

	var observerSrv *http.Server
	if cfg.ObserverAddr != "" {
		observerSrv = &http.Server{Addr: cfg.ObserverAddr, Handler: ws.NewServer(ring, logger).Handler()}
		go func() {
			logger.Info("event stream listening", "addr", cfg.ObserverAddr)
			if err := observerSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("event stream stopped", "error", err)
			}
		}()
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		if observerSrv != nil {
			_ = observerSrv.Shutdown(ctx)
		}
		if archiveWriter != nil {
			if err := archiveWriter.Close(); err != nil {
				logger.Warn("close event archive", "error", err)
			}
		}
		if closer, ok := backends.Gemini.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("flush traces", "error", err)
		}
	})

	logger.Info("hipster trail server listening",
		"addr", cfg.Addr,
		"chat", cfg.ChatURL != "",
		"proxy", cfg.ProxyURL != "",
		"gemini", backends.Gemini != nil,
		"diffusion", cfg.DiffusionURL != "",
	)
	s.Spin()
}

func mustBuildBackends(ctx context.Context, cfg config.Config, schemas *schema.Validator, logger *slog.Logger) generate.Backends {
	textTransport, err := backend.NewTransport(cfg.TextTimeout)
	if err != nil {
		logger.Error("build text transport", "error", err)
		os.Exit(1)
	}
	imageTransport, err := backend.NewTransport(cfg.ImageTimeout)
	if err != nil {
		logger.Error("build image transport", "error", err)
		os.Exit(1)
	}

	out := generate.Backends{
		Chat:      chat.New(chat.Config{URL: cfg.ChatURL, APIKey: cfg.ChatKey, Model: cfg.ChatModel}, textTransport, schemas),
		Proxy:     proxy.New(proxy.Config{URL: cfg.ProxyURL, APIKey: cfg.ProxyKey, Model: cfg.ProxyModel}, textTransport, schemas),
		Diffusion: diffusion.New(diffusion.DefaultConfig(cfg.DiffusionURL), imageTransport, schemas),
	}
	g, err := gemini.New(ctx, cfg.GeminiKey, cfg.GeminiModel)
	switch {
	case err == nil:
		out.Gemini = g
	case errors.Is(err, ports.ErrBackendNotConfigured):
	default:
		logger.Warn("gemini backend unavailable", "error", err)
	}
	return out
}

// buildAudit keeps generation logs in memory unless a DSN is configured.
func buildAudit(ctx context.Context, cfg config.Config, logger *slog.Logger) ports.GenerationLogRepository {
	if cfg.DBDSN == "" {
		return memrepo.NewGenerationLogRepo(memrepo.NewStore(memrepo.DefaultCapacity))
	}
	db, err := gormrepo.OpenPostgres(ctx, cfg.DBDSN)
	if err != nil {
		logger.Error("open postgres", "error", err)
		os.Exit(1)
	}
	if err := gormrepo.ApplyMigrations(ctx, db, os.DirFS(cfg.MigrationsDir)); err != nil {
		logger.Error("apply migrations", "error", err)
		os.Exit(1)
	}
	return gormrepo.NewGenerationLogRepo(db)
}
