package companion

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrInvalidName = errors.New("invalid companion name")

const DefaultName = "Lampy"

// NewState builds a first-interaction companion with a freshly generated character.
func NewState(userID, name string, gold int, now time.Time, rng Rand) State {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	gen := GenerateCharacter(rng)
	return State{
		UserID:     userID,
		Name:       name,
		Stats:      DefaultStats,
		Character:  gen.Character,
		Favorites:  gen.Favorites,
		Level:      1,
		Gold:       gold,
		Inventory:  Inventory{},
		Habits:     []Habit{},
		LastUpdate: now,
		CreatedAt:  now,
	}
}

// Clone returns a deep copy so ledger and resolver work never aliases the caller's maps.
func (s State) Clone() State {
	out := s
	out.Inventory = maps.Clone(s.Inventory)
	if out.Inventory == nil {
		out.Inventory = Inventory{}
	}
	for name, e := range out.Inventory {
		if e.LastUsed != nil {
			t := *e.LastUsed
			e.LastUsed = &t
			out.Inventory[name] = e
		}
	}
	out.Character.Secondary = slices.Clone(s.Character.Secondary)
	out.Purchases.History = slices.Clone(s.Purchases.History)
	out.Habits = slices.Clone(s.Habits)
	return out
}

func (s State) DisplayName() string {
	if strings.TrimSpace(s.Name) == "" {
		return DefaultName
	}
	return s.Name
}

func (s *State) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameRunes {
		return ErrInvalidName
	}
	s.Name = name
	return nil
}

// Items lists inventory entries sorted by item name.
func (inv Inventory) Items() []InventoryEntry {
	out := make([]InventoryEntry, 0, len(inv))
	for _, name := range slices.Sorted(maps.Keys(inv)) {
		out = append(out, inv[name])
	}
	return out
}

func (inv Inventory) Quantity(item string) int {
	return inv[item].Quantity
}
