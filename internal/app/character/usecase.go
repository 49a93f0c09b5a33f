package character

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hipstertrail/internal/app/fallback"
	"hipstertrail/internal/domain/trail"
)

var ErrUnknownFeature = errors.New("unknown character feature")

type Generator interface {
	Name(ctx context.Context, player trail.PlayerState) fallback.Result[string]
	Bio(ctx context.Context, player trail.PlayerState) fallback.Result[string]
	Avatar(ctx context.Context, player trail.PlayerState) fallback.Result[string]
	Loot(ctx context.Context, player trail.PlayerState) fallback.Result[trail.LootItem]
	Transport(ctx context.Context, player trail.PlayerState) fallback.Result[string]
}

type UseCase struct {
	Generator Generator
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	player := req.Player
	player.Name = strings.TrimSpace(player.Name)
	player.Job = strings.TrimSpace(player.Job)

	switch req.Feature {
	case FeatureName:
		return wrap(u.Generator.Name(ctx, player)), nil
	case FeatureBio:
		return wrap(u.Generator.Bio(ctx, player)), nil
	case FeatureAvatar:
		return wrap(u.Generator.Avatar(ctx, player)), nil
	case FeatureLoot:
		return wrap(u.Generator.Loot(ctx, player)), nil
	case FeatureTransport:
		return wrap(u.Generator.Transport(ctx, player)), nil
	default:
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownFeature, req.Feature)
	}
}

func wrap[T any](r fallback.Result[T]) Response {
	return Response{Value: r.Value, DataSource: r.DataSource}
}
