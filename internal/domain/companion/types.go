package companion

import (
	"encoding/json"
	"slices"
	"time"
)

type StatKey string

const (
	StatCoffee     StatKey = "coffee"
	StatSleep      StatKey = "sleep"
	StatMood       StatKey = "mood"
	StatAppetite   StatKey = "appetite"
	StatEnergy     StatKey = "energy"
	StatFluffiness StatKey = "fluffiness"
)

var AllStats = []StatKey{StatCoffee, StatSleep, StatMood, StatAppetite, StatEnergy, StatFluffiness}

type SkillKey string

const (
	SkillLiterary SkillKey = "literary_skill"
	SkillGame     SkillKey = "game_skill"
	SkillSocial   SkillKey = "social_skill"
	SkillCulinary SkillKey = "culinary_skill"
)

func IsStat(k StatKey) bool {
	return slices.Contains(AllStats, k)
}

// AllSkills is also the draw order for level-up skill selection.
var AllSkills = []SkillKey{SkillLiterary, SkillGame, SkillSocial, SkillCulinary}

type Stats struct {
	Coffee     int `json:"coffee"`
	Sleep      int `json:"sleep"`
	Mood       int `json:"mood"`
	Appetite   int `json:"appetite"`
	Energy     int `json:"energy"`
	Fluffiness int `json:"fluffiness"`
}

func (s Stats) Get(key StatKey) int {
	switch key {
	case StatCoffee:
		return s.Coffee
	case StatSleep:
		return s.Sleep
	case StatMood:
		return s.Mood
	case StatAppetite:
		return s.Appetite
	case StatEnergy:
		return s.Energy
	case StatFluffiness:
		return s.Fluffiness
	default:
		return 0
	}
}

// Set stores v clamped into [StatMin, StatMax].
func (s *Stats) Set(key StatKey, v int) {
	v = clamp(v, StatMin, StatMax)
	switch key {
	case StatCoffee:
		s.Coffee = v
	case StatSleep:
		s.Sleep = v
	case StatMood:
		s.Mood = v
	case StatAppetite:
		s.Appetite = v
	case StatEnergy:
		s.Energy = v
	case StatFluffiness:
		s.Fluffiness = v
	}
}

func (s Stats) Clamped() Stats {
	out := s
	for _, k := range AllStats {
		out.Set(k, s.Get(k))
	}
	return out
}

func (s Stats) AsMap() map[string]int {
	out := make(map[string]int, len(AllStats))
	for _, k := range AllStats {
		out[string(k)] = s.Get(k)
	}
	return out
}

type Skills struct {
	Literary int `json:"literary_skill"`
	Game     int `json:"game_skill"`
	Social   int `json:"social_skill"`
	Culinary int `json:"culinary_skill"`
}

func (s Skills) Get(key SkillKey) int {
	switch key {
	case SkillLiterary:
		return s.Literary
	case SkillGame:
		return s.Game
	case SkillSocial:
		return s.Social
	case SkillCulinary:
		return s.Culinary
	default:
		return 0
	}
}

func (s *Skills) Set(key SkillKey, v int) {
	v = clamp(v, SkillMin, SkillMax)
	switch key {
	case SkillLiterary:
		s.Literary = v
	case SkillGame:
		s.Game = v
	case SkillSocial:
		s.Social = v
	case SkillCulinary:
		s.Culinary = v
	}
}

type Trait string

const (
	TraitCoffeeLover     Trait = "coffee-lover"
	TraitAffectionSeeker Trait = "affection-seeker"
	TraitBookworm        Trait = "bookworm"
	TraitPlayful         Trait = "playful"
	TraitSleepyhead      Trait = "sleepyhead"
	TraitGourmet         Trait = "gourmet"
	TraitNeatFreak       Trait = "neat-freak"
	TraitCurious         Trait = "curious"
	TraitGrumpy          Trait = "grumpy"
	TraitAdventurous     Trait = "adventurous"
)

var AllTraits = []Trait{
	TraitCoffeeLover, TraitAffectionSeeker, TraitBookworm, TraitPlayful, TraitSleepyhead,
	TraitGourmet, TraitNeatFreak, TraitCurious, TraitGrumpy, TraitAdventurous,
}

func IsTrait(t Trait) bool {
	for _, known := range AllTraits {
		if known == t {
			return true
		}
	}
	return false
}

type Character struct {
	Primary   Trait   `json:"primary"`
	Secondary []Trait `json:"secondary"`
}

type Favorites struct {
	Coffee    string `json:"coffee"`
	Sweet     string `json:"sweet"`
	BookGenre string `json:"book_genre"`
	Color     string `json:"color"`
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

type InventoryEntry struct {
	ItemName string     `json:"item_name"`
	Quantity int        `json:"quantity"`
	Category string     `json:"category"`
	Rarity   Rarity     `json:"rarity"`
	LastUsed *time.Time `json:"last_used,omitempty"`
}

// Inventory is keyed by item name. Entries with quantity <= 0 are never stored.
type Inventory map[string]InventoryEntry

type PurchaseRecord struct {
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int       `json:"unit_price"`
	At        time.Time `json:"at"`
}

type PurchaseStats struct {
	TotalSpent    int              `json:"total_spent"`
	PurchaseCount int              `json:"purchase_count"`
	History       []PurchaseRecord `json:"history"`
}

// Habit records are owned by the habit tracker and carried through untouched.
type Habit = json.RawMessage

// State is the per-user companion aggregate.
type State struct {
	UserID     string        `json:"user_id"`
	Name       string        `json:"name"`
	Stats      Stats         `json:"stats"`
	Character  Character     `json:"character"`
	Favorites  Favorites     `json:"favorites"`
	Skills     Skills        `json:"skills"`
	Level      int           `json:"level"`
	Experience int           `json:"experience"`
	Gold       int           `json:"gold"`
	Inventory  Inventory     `json:"inventory"`
	Purchases  PurchaseStats `json:"purchases"`
	Habits     []Habit       `json:"habits"`
	LastUpdate time.Time     `json:"last_update"`
	CreatedAt  time.Time     `json:"created_at"`
	Version    int64         `json:"version"`
}

type ActionType string

const (
	ActionCoffee   ActionType = "coffee"
	ActionFeeding  ActionType = "feeding"
	ActionHug      ActionType = "hug"
	ActionGrooming ActionType = "grooming"
	ActionReading  ActionType = "reading"
	ActionPlay     ActionType = "play"
)

var AllActions = []ActionType{ActionCoffee, ActionFeeding, ActionHug, ActionGrooming, ActionReading, ActionPlay}

type ActionEffectResult struct {
	Success          bool            `json:"success"`
	Action           ActionType      `json:"action,omitempty"`
	Message          string          `json:"message"`
	Messages         []string        `json:"messages,omitempty"`
	StatDeltas       map[StatKey]int `json:"stat_deltas"`
	ExperienceGained int             `json:"experience_gained"`
	LevelsGained     int             `json:"levels_gained"`
	LevelUp          bool            `json:"level_up"`
}

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventCompanionCreated   = "companion_created"
	EventCompanionRecovered = "companion_recovered"
	EventCompanionRenamed   = "companion_renamed"
	EventStatsDecayed       = "stats_decayed"
	EventActionApplied      = "action_applied"
	EventLevelUp            = "level_up"
	EventGoldEarned         = "gold_earned"
	EventItemPurchased      = "item_purchased"
	EventItemUsed           = "item_used"
)
