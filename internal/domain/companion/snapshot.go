package companion

import "time"

type MoodLabel string

const (
	MoodEcstatic  MoodLabel = "ecstatic"
	MoodHappy     MoodLabel = "happy"
	MoodCalm      MoodLabel = "calm"
	MoodGrumpy    MoodLabel = "grumpy"
	MoodMiserable MoodLabel = "miserable"
)

const (
	NeedCoffee   = "NEEDS_COFFEE"
	NeedSleep    = "SLEEPY"
	NeedFood     = "HUNGRY"
	NeedRest     = "TIRED"
	NeedGrooming = "SCRUFFY"
)

// Snapshot is a read-only render view of a fully decayed companion.
type Snapshot struct {
	UserID     string           `json:"user_id"`
	Name       string           `json:"name"`
	Stats      Stats            `json:"stats"`
	MoodLabel  MoodLabel        `json:"mood_label"`
	Needs      []string         `json:"needs"`
	Character  Character        `json:"character"`
	Favorites  Favorites        `json:"favorites"`
	Skills     Skills           `json:"skills"`
	Level      int              `json:"level"`
	Experience int              `json:"experience"`
	Gold       int              `json:"gold"`
	Inventory  []InventoryEntry `json:"inventory"`
	Purchases  PurchaseStats    `json:"purchases"`
	LastUpdate time.Time        `json:"last_update"`
}

func (s State) Snapshot() Snapshot {
	c := s.Clone()
	return Snapshot{
		UserID:     c.UserID,
		Name:       c.DisplayName(),
		Stats:      c.Stats,
		MoodLabel:  LabelMood(c.Stats.Mood),
		Needs:      DeriveNeeds(c.Stats),
		Character:  c.Character,
		Favorites:  c.Favorites,
		Skills:     c.Skills,
		Level:      c.Level,
		Experience: c.Experience,
		Gold:       c.Gold,
		Inventory:  c.Inventory.Items(),
		Purchases:  c.Purchases,
		LastUpdate: c.LastUpdate,
	}
}

func LabelMood(mood int) MoodLabel {
	switch {
	case mood >= 80:
		return MoodEcstatic
	case mood >= 60:
		return MoodHappy
	case mood >= 40:
		return MoodCalm
	case mood >= 20:
		return MoodGrumpy
	default:
		return MoodMiserable
	}
}

// DeriveNeeds reports the same thresholds the mood penalty table reacts to.
func DeriveNeeds(s Stats) []string {
	needs := make([]string, 0, 5)
	if s.Coffee < LowCoffeeThreshold {
		needs = append(needs, NeedCoffee)
	}
	if s.Sleep > HighSleepThreshold {
		needs = append(needs, NeedSleep)
	}
	if s.Appetite > HighAppetiteThreshold {
		needs = append(needs, NeedFood)
	}
	if s.Energy < LowEnergyThreshold {
		needs = append(needs, NeedRest)
	}
	if s.Fluffiness < LowFluffinessThreshold {
		needs = append(needs, NeedGrooming)
	}
	return needs
}
