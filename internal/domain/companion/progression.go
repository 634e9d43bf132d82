package companion

// Rand is the injected random source. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// AddExperience adds amount to the state and rolls every full ExperiencePerLevel
// into a level. Each level gained raises one randomly drawn skill.
func AddExperience(s *State, amount int, rng Rand) int {
	if s == nil || amount <= 0 {
		return 0
	}
	if s.Level < 1 {
		s.Level = 1
	}
	s.Experience += amount
	gained := 0
	for s.Experience >= ExperiencePerLevel {
		s.Experience -= ExperiencePerLevel
		s.Level++
		gained++
		skill := AllSkills[rng.IntN(len(AllSkills))]
		s.Skills.Set(skill, s.Skills.Get(skill)+LevelUpSkillBonus)
	}
	return gained
}

// RollActionExperience draws uniformly from [ActionExpMin, ActionExpMax].
func RollActionExperience(rng Rand) int {
	return ActionExpMin + rng.IntN(ActionExpMax-ActionExpMin+1)
}
