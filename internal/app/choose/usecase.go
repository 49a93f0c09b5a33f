package choose

import (
	"context"
	"errors"
	"fmt"

	"hipstertrail/internal/domain/trail"
)

var (
	ErrInvalidRequest = errors.New("invalid choose request")
	ErrGameOver       = errors.New("game is over")
)

// UseCase applies a chosen option to the player sent by the client. Nothing
// is stored; the new state goes back in the response. Consequences must lie
// in the ranges turns draw from.
type UseCase struct{}

func (UseCase) Execute(_ context.Context, req Request) (Response, error) {
	switch req.Choice.ID {
	case trail.ChoiceEmbrace:
	case trail.ChoicePlayItSafe:
		if req.Choice.Badge != nil {
			return Response{}, fmt.Errorf("%w: play it safe never awards a badge", ErrInvalidRequest)
		}
	default:
		return Response{}, fmt.Errorf("%w: unknown choice %q", ErrInvalidRequest, req.Choice.ID)
	}
	if status := req.Player.Status(); status != trail.StatusPlaying {
		return Response{}, fmt.Errorf("%w: %s", ErrGameOver, status)
	}
	tuning, _ := trail.TuningFor(req.Choice.ID)
	if err := tuning.Check(req.Choice.Consequences); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	next := req.Player.Apply(req.Choice)
	return Response{Player: next, Status: next.Status()}, nil
}
