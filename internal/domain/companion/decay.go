package companion

import (
	"errors"
	"math"
	"time"
)

var ErrMissingLastUpdate = errors.New("missing last update timestamp")

type DecayEngine struct{}

// Apply catches stats up to now. It reports whether an update happened.
// On a fault the stats come back unchanged but lastUpdate still moves to now,
// so a broken record cannot replay the same catch-up forever.
func (DecayEngine) Apply(stats Stats, lastUpdate, now time.Time) (Stats, time.Time, bool, error) {
	if lastUpdate.IsZero() {
		return stats.Clamped(), now, false, ErrMissingLastUpdate
	}
	elapsed := now.Sub(lastUpdate)
	if elapsed < DecayMinInterval {
		return stats, lastUpdate, false, nil
	}
	if elapsed > DecayMaxCatchUp {
		elapsed = DecayMaxCatchUp
	}
	hours := elapsed.Hours()

	next := stats
	for _, key := range AllStats {
		rate, ok := DecayRatesPerHour[key]
		if !ok {
			continue
		}
		next.Set(key, next.Get(key)+scaledDrift(rate, hours))
	}
	next.Set(StatMood, next.Mood-MoodPenalty(next))
	return next, now, true, nil
}

// scaledDrift is floor(rate × hours): a partial hour rounds growth down and
// decline further down, so 2.5h of coffee at -5/h is -13.
func scaledDrift(ratePerHour int, hours float64) int {
	return int(math.Floor(float64(ratePerHour) * hours))
}

func MoodPenalty(s Stats) int {
	penalty := 0
	if s.Coffee < LowCoffeeThreshold {
		penalty += LowCoffeeMoodPenalty
	}
	if s.Sleep > HighSleepThreshold {
		penalty += HighSleepMoodPenalty
	}
	if s.Appetite > HighAppetiteThreshold {
		penalty += HighAppetiteMoodPenalty
	}
	if s.Energy < LowEnergyThreshold {
		penalty += LowEnergyMoodPenalty
	}
	if s.Fluffiness < LowFluffinessThreshold {
		penalty += LowFluffinessMoodPenalty
	}
	return penalty
}
