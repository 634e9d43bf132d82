package companion

import "time"

// seqRand replays fixed draws, wrapping around; each draw is reduced mod n.
type seqRand struct {
	draws []int
	next  int
}

func (r *seqRand) IntN(n int) int {
	if len(r.draws) == 0 {
		return 0
	}
	v := r.draws[r.next%len(r.draws)]
	r.next++
	return v % n
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testState() State {
	return State{
		UserID:     "user-1",
		Name:       "Ember",
		Stats:      Stats{Coffee: 70, Sleep: 30, Mood: 50, Appetite: 60, Energy: 75, Fluffiness: 90},
		Character:  Character{Primary: TraitCurious, Secondary: []Trait{TraitPlayful}},
		Level:      1,
		Gold:       100,
		Inventory:  Inventory{},
		Habits:     []Habit{},
		LastUpdate: testNow,
		CreatedAt:  testNow,
	}
}

func hoursOf(n int) time.Duration {
	return time.Duration(n) * time.Hour
}
