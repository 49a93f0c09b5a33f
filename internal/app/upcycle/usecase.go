package upcycle

import (
	"context"
	"fmt"

	"hipstertrail/internal/app/fallback"
	"hipstertrail/internal/app/generate"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/domain/trail"
)

type Generator interface {
	UpcycledItem(ctx context.Context, player trail.PlayerState, items []trail.LootItem, target trail.Quality) fallback.Result[trail.LootItem]
}

type UseCase struct {
	Generator Generator
	Observer  fallback.Observer
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	target, err := trail.UpcycleTarget(req.Items)
	if err != nil {
		return Response{}, err
	}
	if req.Player != nil {
		if _, err := trail.RemoveConsumed(req.Player.Inventory, req.Items); err != nil {
			return Response{}, err
		}
	}

	var player trail.PlayerState
	if req.Player != nil {
		player = *req.Player
	}
	res := u.Generator.UpcycledItem(ctx, player, req.Items, target)

	var out Response
	if req.Player != nil {
		inventory, crafted, err := trail.CompleteUpcycle(player.Inventory, req.Items, res.Value)
		if err != nil {
			return Response{}, err
		}
		player.Inventory = inventory
		out = Response{Item: crafted, Player: &player}
	} else {
		crafted, err := trail.ForgeUpcycle(req.Items, res.Value)
		if err != nil {
			return Response{}, err
		}
		out = Response{Item: crafted}
	}
	out.DataSource = res.DataSource

	u.Observer.Publish(ctx, ports.Event{
		Kind:       ports.EventUpcycled,
		Level:      ports.LevelInfo,
		Feature:    generate.FeatureUpcycle,
		DataSource: string(res.DataSource),
		Message:    fmt.Sprintf("Three %s finds became %s (%s)", req.Items[0].Quality, out.Item.Name, out.Item.Quality),
	})
	return out, nil
}
