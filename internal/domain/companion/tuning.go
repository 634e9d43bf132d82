package companion

import "time"

const (
	StatMin  = 0
	StatMax  = 100
	SkillMin = 0
	SkillMax = 100

	ExperiencePerLevel = 100
	ActionExpMin       = 5
	ActionExpMax       = 15
	LevelUpSkillBonus  = 10

	CoffeeLoverMoodBonus     = 10
	AffectionSeekerMoodBonus = 15

	DefaultStartingGold = 50
	MaxPurchaseHistory  = 20
	// MaxItemPrice and MaxGoldGrant keep price × quantity and balances far
	// from integer overflow.
	MaxItemPrice = 1_000_000
	MaxGoldGrant = 1_000_000
	MaxNameRunes        = 32

	LowCoffeeThreshold     = 20
	HighSleepThreshold     = 80
	HighAppetiteThreshold  = 80
	LowEnergyThreshold     = 20
	LowFluffinessThreshold = 30

	LowCoffeeMoodPenalty     = 10
	HighSleepMoodPenalty     = 5
	HighAppetiteMoodPenalty  = 5
	LowEnergyMoodPenalty     = 5
	LowFluffinessMoodPenalty = 5
)

// DecayMinInterval is the smallest elapsed time that triggers a catch-up.
const DecayMinInterval = 30 * time.Minute

// Every stat saturates within this window, so longer gaps are computed as if capped.
const DecayMaxCatchUp = 30 * 24 * time.Hour

var DecayRatesPerHour = map[StatKey]int{
	StatCoffee:     -5,
	StatSleep:      3,
	StatAppetite:   2,
	StatEnergy:     -2,
	StatFluffiness: -1,
}

var DefaultStats = Stats{
	Coffee:     70,
	Sleep:      30,
	Mood:       80,
	Appetite:   60,
	Energy:     75,
	Fluffiness: 90,
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
