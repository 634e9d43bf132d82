package companion

import (
	"fmt"
	"strings"
)

type ActionResolver struct {
	Rand Rand
}

// Resolve applies a named action to a copy of state. Unknown names return the
// input untouched alongside a failed result.
func (r ActionResolver) Resolve(state State, name string) (State, ActionEffectResult) {
	action, ok := ParseAction(strings.TrimSpace(strings.ToLower(name)))
	if !ok {
		return state, RejectedResult(name)
	}
	effect := ActionEffects[action]

	next := state.Clone()
	result := ActionEffectResult{
		Success:    true,
		Action:     action,
		StatDeltas: map[StatKey]int{},
	}
	result.Messages = append(result.Messages, fmt.Sprintf(effect.Message, next.DisplayName()))

	applyStatDeltas(&next.Stats, effect.Stats, result.StatDeltas)
	for _, d := range effect.Skills {
		next.Skills.Set(d.Skill, next.Skills.Get(d.Skill)+d.Delta)
	}

	if bonus, ok := TraitBonuses[action][next.Character.Primary]; ok {
		applyStatDeltas(&next.Stats, []StatDelta{{bonus.Stat, bonus.Delta}}, result.StatDeltas)
		result.Messages = append(result.Messages, fmt.Sprintf(bonus.Message, next.DisplayName()))
	}

	result.ExperienceGained = RollActionExperience(r.Rand)
	result.LevelsGained = AddExperience(&next, result.ExperienceGained, r.Rand)
	if result.LevelsGained > 0 {
		result.LevelUp = true
		result.Messages = append(result.Messages, fmt.Sprintf("Level up! %s is now level %d.", next.DisplayName(), next.Level))
	}
	result.Message = strings.Join(result.Messages, " ")
	return next, result
}

func RejectedResult(name string) ActionEffectResult {
	return ActionEffectResult{
		Success:    false,
		Message:    "unknown action: " + name,
		StatDeltas: map[StatKey]int{},
	}
}

// applyStatDeltas clamps every change and accumulates the realized delta, not the nominal one.
func applyStatDeltas(stats *Stats, deltas []StatDelta, realized map[StatKey]int) {
	for _, d := range deltas {
		before := stats.Get(d.Stat)
		stats.Set(d.Stat, before+d.Delta)
		realized[d.Stat] += stats.Get(d.Stat) - before
	}
}
