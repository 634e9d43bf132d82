package action

import (
	"context"
	"errors"
	"strings"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/interaction"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

var ErrInvalidRequest = errors.New("invalid action request")

type UseCase struct {
	Runner interaction.Runner
}

// Execute applies one named action. An unknown action is not an error: it
// comes back as a failed result and nothing is saved.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Action = strings.TrimSpace(req.Action)
	if req.UserID == "" || req.Action == "" {
		return Response{}, ErrInvalidRequest
	}

	var result companion.ActionEffectResult
	out, err := u.Runner.Run(ctx, req.UserID, "action", func(s *interaction.Session) error {
		resolver := companion.ActionResolver{Rand: s.Rand}
		next, res := resolver.Resolve(s.State, req.Action)
		result = res
		if !res.Success {
			s.Reject()
			return nil
		}

		s.State = next
		s.Emit(companion.DomainEvent{
			Type:       companion.EventActionApplied,
			OccurredAt: s.Now,
			Payload: map[string]any{
				"action":            string(res.Action),
				"stat_deltas":       deltasPayload(res.StatDeltas),
				"stats_after":       next.Stats.AsMap(),
				"experience_gained": res.ExperienceGained,
			},
		})
		if res.LevelUp {
			s.Emit(companion.DomainEvent{
				Type:       companion.EventLevelUp,
				OccurredAt: s.Now,
				Payload: map[string]any{
					"level":         next.Level,
					"levels_gained": res.LevelsGained,
				},
			})
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return Response{
		Snapshot:  out.State.Snapshot(),
		Result:    result,
		Created:   out.Created,
		Recovered: out.Recovered,
	}, nil
}

func deltasPayload(deltas map[companion.StatKey]int) map[string]int {
	out := make(map[string]int, len(deltas))
	for k, v := range deltas {
		out[string(k)] = v
	}
	return out
}
