package randsrc

import "testing"

func TestSource_SameSeedSameSequence(t *testing.T) {
	a, b := New(17), New(17)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSource_StaysInRange(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		if v := s.IntN(11); v < 0 || v > 10 {
			t.Fatalf("draw out of range: %d", v)
		}
	}
}
