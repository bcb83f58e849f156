package steward

import (
	"math"
	"testing"

	"github.com/talgya/axinode/internal/engine"
	"github.com/talgya/axinode/internal/entropy"
	"github.com/talgya/axinode/internal/realm"
)

func TestTriage(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *realm.State)
		want   string
	}{
		{"fresh game is short on food", nil, Warning},
		{"debt", func(s *realm.State) { s.Resources.Gold = -1 }, Critical},
		{"starving", func(s *realm.State) { s.Resources.Food = 12 }, Critical},
		{"stocked but losing money", func(s *realm.State) { s.Resources.Food = 10000 }, Watch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := freshSnapshot()
			if tt.mutate != nil {
				tt.mutate(&snap.State)
			}
			h := Triage(snap)
			if h.CrisisLevel != tt.want {
				t.Errorf("got %s, want %s (%+v)", h.CrisisLevel, tt.want, h)
			}
		})
	}
}

func TestTriageFoodDays(t *testing.T) {
	h := Triage(freshSnapshot())
	if h.FoodBalance != -6 {
		t.Fatalf("got food balance %d, want -6", h.FoodBalance)
	}
	if math.Abs(h.FoodDays-100.0/6) > 1e-9 {
		t.Errorf("got %v food days", h.FoodDays)
	}
	if h.Idle != 3 {
		t.Errorf("got %d idle, want 3", h.Idle)
	}
}

func TestTriageThreats(t *testing.T) {
	snap := freshSnapshot()
	s := &snap.State
	s.SeedNations(entropy.NewSeeded(5))
	s.Resources.Food = 10000
	s.Nations[0].Relation = engine.HostileRelation
	s.Nations[1].Relation = engine.HostileRelation + 1
	s.Nations[2].AtWar = true
	s.Nations[3].Relation = -100
	s.Nations[3].Defeated = true

	h := Triage(snap)
	if h.Threats != 2 {
		t.Errorf("got %d threats, want 2", h.Threats)
	}
	if h.CrisisLevel != Watch {
		t.Errorf("got %s, want %s", h.CrisisLevel, Watch)
	}
}
