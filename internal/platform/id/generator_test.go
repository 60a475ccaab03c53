package id

import "testing"

func TestRandomGenerator_PositiveAndBounded(t *testing.T) {
	g := NewRandomGenerator()
	seen := make(map[int64]struct{})
	for i := 0; i < 200; i++ {
		v, err := g.NewID()
		if err != nil {
			t.Fatalf("NewID: %v", err)
		}
		if v <= 0 || v > maxSafe {
			t.Fatalf("id out of range: %d", v)
		}
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate id %d", v)
		}
		seen[v] = struct{}{}
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence(41)
	for want := int64(42); want < 45; want++ {
		got, _ := s.NewID()
		if got != want {
			t.Fatalf("got %d want %d", got, want)
		}
	}
}
