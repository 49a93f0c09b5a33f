package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"hipstertrail/internal/app/character"
	"hipstertrail/internal/app/choose"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/turn"
	"hipstertrail/internal/app/upcycle"
	"hipstertrail/internal/domain/trail"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 200
	turnFailedMessage = "The trail went quiet. Try the turn again."
)

type Handler struct {
	TurnUC      turn.UseCase
	ChooseUC    choose.UseCase
	UpcycleUC   upcycle.UseCase
	CharacterUC character.UseCase
	Events      recentEventsProvider
	Audit       ports.GenerationLogRepository
	KPI         kpiSnapshotProvider
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))

	game := s.Group("/api/game")
	game.POST("/turn", h.turn)
	game.POST("/choose", h.choose)
	game.POST("/upcycle", h.upcycle)

	s.POST("/api/character/:feature", h.character)
	s.GET("/api/events", h.events)

	s.GET("/ops/kpi", h.kpi)
	s.GET("/ops/generations", h.generations)
	s.GET("/healthz", h.healthz)
}

var ErrInvalidJSON = errors.New("invalid json")

func (h Handler) turn(c context.Context, ctx *app.RequestContext) {
	var body turn.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.TurnUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) choose(c context.Context, ctx *app.RequestContext) {
	var body choose.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ChooseUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) upcycle(c context.Context, ctx *app.RequestContext) {
	var body upcycle.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.UpcycleUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) character(c context.Context, ctx *app.RequestContext) {
	var body character.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	body.Feature = character.Feature(strings.TrimSpace(ctx.Param("feature")))
	resp, err := h.CharacterUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type recentEventsProvider interface {
	Recent(limit int) []ports.Event
}

func (h Handler) events(_ context.Context, ctx *app.RequestContext) {
	if h.Events == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "event log not configured")
		return
	}
	limit := queryLimit(ctx, defaultEventLimit)
	ctx.JSON(consts.StatusOK, map[string]any{"events": h.Events.Recent(limit)})
}

func (h Handler) generations(c context.Context, ctx *app.RequestContext) {
	if h.Audit == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "generation audit not configured")
		return
	}
	records, err := h.Audit.ListRecent(c, strings.TrimSpace(string(ctx.Query("feature"))), queryLimit(ctx, defaultEventLimit))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"generations": records})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func queryLimit(ctx *app.RequestContext, def int) int {
	limit, err := strconv.Atoi(string(ctx.Query("limit")))
	if err != nil || limit <= 0 {
		return def
	}
	if limit > maxEventLimit {
		return maxEventLimit
	}
	return limit
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

func writeError(ctx *app.RequestContext, err error) {
	var turnErr *turn.TurnError
	switch {
	case errors.Is(err, ErrInvalidJSON):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", err.Error())
	case errors.As(err, &turnErr):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "turn_failed", turnFailedMessage)
	case errors.Is(err, turn.ErrGameOver),
		errors.Is(err, choose.ErrGameOver):
		writeErrorBody(ctx, consts.StatusConflict, "game_over", err.Error())
	case errors.Is(err, trail.ErrUpcycleNotAllowed):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "upcycle_not_allowed", err.Error())
	case errors.Is(err, character.ErrUnknownFeature):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_feature", err.Error())
	case errors.Is(err, turn.ErrInvalidRequest),
		errors.Is(err, choose.ErrInvalidRequest),
		errors.Is(err, trail.ErrInvalidItem):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
