package companion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SchemaVersion is the layout written by EncodeDocument.
//
// Version 1 documents carry no schema_version key and nest the trait,
// secondary traits and favorites together under "character".
const SchemaVersion = 2

var ErrCorruptDocument = errors.New("corrupt companion document")

type document struct {
	SchemaVersion int              `json:"schema_version"`
	UserID        string           `json:"user_id"`
	Name          string           `json:"name"`
	Stats         *documentStats   `json:"stats,omitempty"`
	Character     *documentChar    `json:"character,omitempty"`
	Favorites     *Favorites       `json:"favorites,omitempty"`
	Skills        *Skills          `json:"skills,omitempty"`
	Level         *int             `json:"level,omitempty"`
	Experience    *int             `json:"experience,omitempty"`
	Gold          *int             `json:"gold,omitempty"`
	Inventory     []InventoryEntry `json:"inventory,omitempty"`
	Purchases     *PurchaseStats   `json:"purchases,omitempty"`
	Habits        []Habit          `json:"habits,omitempty"`
	LastUpdate    *time.Time       `json:"last_update,omitempty"`
	CreatedAt     *time.Time       `json:"created_at,omitempty"`
}

type documentStats struct {
	Coffee     *int `json:"coffee,omitempty"`
	Sleep      *int `json:"sleep,omitempty"`
	Mood       *int `json:"mood,omitempty"`
	Appetite   *int `json:"appetite,omitempty"`
	Energy     *int `json:"energy,omitempty"`
	Fluffiness *int `json:"fluffiness,omitempty"`
}

type documentChar struct {
	Primary   Trait   `json:"primary,omitempty"`
	Secondary []Trait `json:"secondary,omitempty"`

	// version 1 layout
	LegacyTrait     Trait      `json:"trait,omitempty"`
	LegacySecondary []Trait    `json:"secondary_traits,omitempty"`
	LegacyFavorites *Favorites `json:"favorites,omitempty"`
}

func EncodeDocument(s State) ([]byte, error) {
	stats := s.Stats
	level, exp, gold := s.Level, s.Experience, s.Gold
	purchases := s.Purchases
	lastUpdate, createdAt := s.LastUpdate, s.CreatedAt
	doc := document{
		SchemaVersion: SchemaVersion,
		UserID:        s.UserID,
		Name:          s.Name,
		Stats: &documentStats{
			Coffee: &stats.Coffee, Sleep: &stats.Sleep, Mood: &stats.Mood,
			Appetite: &stats.Appetite, Energy: &stats.Energy, Fluffiness: &stats.Fluffiness,
		},
		Character:  &documentChar{Primary: s.Character.Primary, Secondary: s.Character.Secondary},
		Favorites:  &s.Favorites,
		Skills:     &s.Skills,
		Level:      &level,
		Experience: &exp,
		Gold:       &gold,
		Inventory:  s.Inventory.Items(),
		Purchases:  &purchases,
		Habits:     s.Habits,
		LastUpdate: &lastUpdate,
		CreatedAt:  &createdAt,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode companion document: %w", err)
	}
	return b, nil
}

// DecodeDocument parses any supported schema version and runs the migration
// and defaulting pass once. Unreadable input is reported as ErrCorruptDocument.
func DecodeDocument(b []byte) (State, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc.SchemaVersion > SchemaVersion {
		return State{}, fmt.Errorf("%w: unsupported schema version %d", ErrCorruptDocument, doc.SchemaVersion)
	}
	if doc.SchemaVersion < 2 {
		migrateV1(&doc)
	}
	return normalize(doc), nil
}

func migrateV1(doc *document) {
	doc.SchemaVersion = 2
	if doc.Character == nil {
		return
	}
	if doc.Character.Primary == "" {
		doc.Character.Primary = doc.Character.LegacyTrait
	}
	if len(doc.Character.Secondary) == 0 {
		doc.Character.Secondary = doc.Character.LegacySecondary
	}
	if doc.Favorites == nil && doc.Character.LegacyFavorites != nil {
		doc.Favorites = doc.Character.LegacyFavorites
	}
}

func normalize(doc document) State {
	s := State{
		UserID:    doc.UserID,
		Name:      strings.TrimSpace(doc.Name),
		Stats:     DefaultStats,
		Level:     1,
		Gold:      DefaultStartingGold,
		Inventory: Inventory{},
		Habits:    doc.Habits,
	}
	if s.Name == "" {
		s.Name = DefaultName
	}
	if doc.Stats != nil {
		setIfPresent(&s.Stats, StatCoffee, doc.Stats.Coffee)
		setIfPresent(&s.Stats, StatSleep, doc.Stats.Sleep)
		setIfPresent(&s.Stats, StatMood, doc.Stats.Mood)
		setIfPresent(&s.Stats, StatAppetite, doc.Stats.Appetite)
		setIfPresent(&s.Stats, StatEnergy, doc.Stats.Energy)
		setIfPresent(&s.Stats, StatFluffiness, doc.Stats.Fluffiness)
	}
	s.Stats = s.Stats.Clamped()

	if doc.Character != nil {
		s.Character.Primary = doc.Character.Primary
		for _, t := range doc.Character.Secondary {
			if IsTrait(t) && t != s.Character.Primary && len(s.Character.Secondary) < SecondaryTraitCount {
				s.Character.Secondary = append(s.Character.Secondary, t)
			}
		}
	}
	if !IsTrait(s.Character.Primary) {
		s.Character.Primary = TraitCurious
	}
	if doc.Favorites != nil {
		s.Favorites = *doc.Favorites
	}
	if doc.Skills != nil {
		for _, k := range AllSkills {
			s.Skills.Set(k, doc.Skills.Get(k))
		}
	}

	if doc.Level != nil && *doc.Level > 1 {
		s.Level = *doc.Level
	}
	if doc.Experience != nil && *doc.Experience > 0 {
		s.Level += *doc.Experience / ExperiencePerLevel
		s.Experience = *doc.Experience % ExperiencePerLevel
	}
	if doc.Gold != nil {
		s.Gold = *doc.Gold
	}

	for _, e := range doc.Inventory {
		name := strings.TrimSpace(e.ItemName)
		if name == "" || e.Quantity <= 0 {
			continue
		}
		e.ItemName = name
		if e.Rarity == "" {
			e.Rarity = RarityCommon
		}
		if prev, ok := s.Inventory[name]; ok {
			e.Quantity += prev.Quantity
		}
		s.Inventory[name] = e
	}

	if doc.Purchases != nil {
		s.Purchases = *doc.Purchases
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if doc.LastUpdate != nil {
		s.LastUpdate = *doc.LastUpdate
	}
	if doc.CreatedAt != nil {
		s.CreatedAt = *doc.CreatedAt
	}
	return s
}

func setIfPresent(stats *Stats, key StatKey, v *int) {
	if v != nil {
		stats.Set(key, *v)
	}
}
