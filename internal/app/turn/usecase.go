package turn

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/errgroup"

	"hipstertrail/internal/app/fallback"
	"hipstertrail/internal/app/generate"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/domain/trail"
)

var (
	ErrInvalidRequest = errors.New("invalid turn request")
	ErrGameOver       = errors.New("game is over")
)

// TurnError is the single failure a turn reports. The player state sent
// with the request is never modified on failure.
type TurnError struct {
	Stage string
	Err   error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn aborted at %s: %v", e.Stage, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

type Generator interface {
	Scenario(ctx context.Context, player trail.PlayerState) fallback.Result[trail.Scenario]
	SceneImage(ctx context.Context, prompt string) fallback.Result[string]
	BadgeImage(ctx context.Context, prompt string) fallback.Result[string]
}

type UseCase struct {
	Generator Generator
	Observer  fallback.Observer
	IntN      trail.IntN
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	player := req.Player
	player.Name = strings.TrimSpace(player.Name)
	if player.Name == "" {
		return Response{}, ErrInvalidRequest
	}
	if status := player.Status(); status != trail.StatusPlaying {
		return Response{}, fmt.Errorf("%w: %s", ErrGameOver, status)
	}

	resp, err := u.play(ctx, player)
	if err != nil {
		u.finish(ctx, player, err)
		return Response{}, err
	}
	u.finish(ctx, player, nil)
	return resp, nil
}

func (u UseCase) play(ctx context.Context, player trail.PlayerState) (Response, error) {
	scenarioRes := u.Generator.Scenario(ctx, player)
	if err := ctx.Err(); err != nil {
		return Response{}, &TurnError{Stage: generate.FeatureScenario, Err: err}
	}
	scenario := scenarioRes.Value
	if strings.TrimSpace(scenario.Description) == "" {
		return Response{}, &TurnError{Stage: generate.FeatureScenario, Err: ports.ErrMalformedPayload}
	}
	sources := map[string]trail.DataSource{generate.FeatureScenario: scenarioRes.DataSource}

	// Copy the badge so the image write never aliases generator output.
	var badge *trail.Badge
	if scenario.Badge != nil {
		b := *scenario.Badge
		badge = &b
	}

	var sceneRes, badgeRes fallback.Result[string]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sceneRes = u.Generator.SceneImage(gctx, scenario.SceneImagePrompt)
		return gctx.Err()
	})
	if badge != nil {
		g.Go(func() error {
			badgeRes = u.Generator.BadgeImage(gctx, badgeImagePrompt(*badge))
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Response{}, &TurnError{Stage: "images", Err: err}
	}

	scenario.SceneImage = sceneRes.Value
	sources[generate.FeatureSceneImage] = sceneRes.DataSource
	if badge != nil {
		badge.Image = badgeRes.Value
		sources[generate.FeatureBadgeImage] = badgeRes.DataSource
	}
	scenario.Badge = badge
	scenario.Choices = trail.SynthesizeChoices(u.intn(), badge)

	return Response{Scenario: scenario, Choices: scenario.Choices, DataSources: sources}, nil
}

func (u UseCase) finish(ctx context.Context, player trail.PlayerState, err error) {
	if u.Observer.Metrics != nil {
		u.Observer.Metrics.RecordTurn(err == nil)
	}
	if err != nil {
		u.Observer.Publish(ctx, ports.Event{
			Kind:    ports.EventTurnFailed,
			Level:   ports.LevelError,
			Message: "The trail went quiet. Try the turn again.",
		})
		return
	}
	u.Observer.Publish(ctx, ports.Event{
		Kind:    ports.EventTurnCompleted,
		Level:   ports.LevelInfo,
		Message: fmt.Sprintf("%s pressed on from %s", player.Name, player.Location),
	})
}

func (u UseCase) intn() trail.IntN {
	if u.IntN == nil {
		return rand.IntN
	}
	return u.IntN
}

func badgeImagePrompt(b trail.Badge) string {
	if strings.TrimSpace(b.ImagePrompt) != "" {
		return b.ImagePrompt
	}
	return fmt.Sprintf("embroidered merit badge, %s, %s, flat illustration", b.Emoji, b.Description)
}
