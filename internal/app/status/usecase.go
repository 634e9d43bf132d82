package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/interaction"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Runner interaction.Runner
}

// Execute returns the caught-up snapshot. Only catch-up bookkeeping is saved.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return Response{}, ErrInvalidRequest
	}
	out, err := u.Runner.Run(ctx, req.UserID, "status", func(*interaction.Session) error {
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Snapshot: out.State.Snapshot(), Created: out.Created, Recovered: out.Recovered}, nil
}

type RenameUseCase struct {
	Runner interaction.Runner
}

func (u RenameUseCase) Execute(ctx context.Context, req RenameRequest) (Response, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return Response{}, ErrInvalidRequest
	}
	out, err := u.Runner.Run(ctx, req.UserID, "rename", func(s *interaction.Session) error {
		previous := s.State.Name
		if err := s.State.Rename(req.Name); err != nil {
			return fmt.Errorf("%w: %w", interaction.ErrRejected, err)
		}
		s.Emit(companion.DomainEvent{
			Type:       companion.EventCompanionRenamed,
			OccurredAt: s.Now,
			Payload:    map[string]any{"from": previous, "to": s.State.Name},
		})
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Snapshot: out.State.Snapshot(), Created: out.Created, Recovered: out.Recovered}, nil
}
