package combat

import (
	"testing"

	"github.com/talgya/axinode/internal/entropy"
)

// noRout never passes a 20% roll.
func noRout() entropy.Source { return &entropy.Fixed{Values: []float64{0.99}} }

func TestCoefficientTables(t *testing.T) {
	equipment := []struct {
		rate int
		want float64
	}{
		{100, 1.0}, {99, 0.9}, {85, 0.9}, {80, 0.9}, {79, 0.75}, {60, 0.75},
		{45, 0.5}, {20, 0.3}, {19, 0.2}, {0, 0.2},
	}
	for _, tt := range equipment {
		if got := EquipmentCoefficient(tt.rate); got != tt.want {
			t.Errorf("EquipmentCoefficient(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}

	morale := []struct {
		morale int
		want   float64
	}{
		{100, 1.15}, {90, 1.0}, {80, 1.0}, {70, 0.85}, {40, 0.65}, {20, 0.4}, {5, 0.4},
	}
	for _, tt := range morale {
		if got := MoraleCoefficient(tt.morale); got != tt.want {
			t.Errorf("MoraleCoefficient(%d) = %v, want %v", tt.morale, got, tt.want)
		}
	}
}

func TestPowerScenarioC(t *testing.T) {
	got := Power(Forces{Unassigned: 100}, Offense, 85, 90, 0)
	if got != 90 {
		t.Fatalf("got power %d, want 90", got)
	}
}

func TestPowerStanceMultipliers(t *testing.T) {
	f := Forces{Infantry: 10, Archers: 10, Cavalry: 10}
	// 11 + 15 + 8 = 34 on defense, 10 + 9 + 12 = 31 on offense.
	if got := Power(f, Defense, 100, 80, 0); got != 34 {
		t.Errorf("defense: got %d, want 34", got)
	}
	if got := Power(f, Offense, 100, 80, 0); got != 31 {
		t.Errorf("offense: got %d, want 31", got)
	}
	if got := Power(Forces{Mages: 10}, Defense, 100, 80, 0); got != 13 {
		t.Errorf("mages: got %d, want 13", got)
	}
	if got := (Forces{Infantry: 1, Mages: 2, Unassigned: 3}).Total(); got != 6 {
		t.Errorf("total: got %d, want 6", got)
	}
	if got := Power(Forces{Unassigned: 100}, Offense, 100, 80, 50); got != 150 {
		t.Errorf("bonus: got %d, want 150", got)
	}
}

func TestExchangeScenarioD(t *testing.T) {
	b := New("b1", "nation_1", "Rival", false,
		Side{Troops: 100, Power: 90, Morale: 80},
		Side{Troops: 100, Power: 60, Morale: 80},
	)
	b.Exchange(noRout())

	if b.Player.Troops != 94 {
		t.Errorf("player troops: got %d, want 94 (6 lost)", b.Player.Troops)
	}
	if b.Enemy.Troops != 92 {
		t.Errorf("enemy troops: got %d, want 92 (8 lost)", b.Enemy.Troops)
	}
	if b.Player.Morale != 82 || b.Enemy.Morale != 77 {
		t.Errorf("morale: got %d/%d, want 82/77", b.Player.Morale, b.Enemy.Morale)
	}
	// 90 * 94/100 = 84.6, 60 * 92/100 = 55.2
	if b.Player.Power != 84 || b.Enemy.Power != 55 {
		t.Errorf("power: got %d/%d, want 84/55", b.Player.Power, b.Enemy.Power)
	}
	if !b.Ongoing() {
		t.Errorf("battle ended after one exchange: %s", b.Result)
	}
}

func TestAdvanceWaitsForInterval(t *testing.T) {
	b := New("b1", "n", "Rival", true, Side{Troops: 50, Power: 50, Morale: 80}, Side{Troops: 50, Power: 50, Morale: 80})
	if b.Advance(TickInterval-0.5, noRout()) {
		t.Fatal("exchange ran before the interval elapsed")
	}
	if !b.Advance(0.5, noRout()) {
		t.Fatal("exchange did not run once the interval elapsed")
	}
	if b.Exchanges != 1 {
		t.Errorf("got %d exchanges, want 1", b.Exchanges)
	}
}

func TestBattleTerminates(t *testing.T) {
	rng := entropy.NewSeeded(42)
	for p := 1; p <= 400; p += 37 {
		for e := 1; e <= 400; e += 41 {
			b := New("b", "n", "Rival", p%2 == 0,
				Side{Troops: p, Power: p, Morale: 70},
				Side{Troops: e, Power: EnemyPower(e, EnemyStartMorale), Morale: EnemyStartMorale},
			)
			for i := 0; i < 10000 && b.Ongoing(); i++ {
				b.Advance(TickInterval, rng)
			}
			if b.Ongoing() {
				t.Fatalf("battle %d vs %d did not terminate", p, e)
			}
		}
	}
}

func TestStrongerSideWins(t *testing.T) {
	b := New("b", "n", "Rival", false,
		Side{Troops: 200, Power: 200, Morale: 90},
		Side{Troops: 40, Power: 30, Morale: 70},
	)
	for b.Ongoing() {
		b.Exchange(noRout())
	}
	if b.Result != Victory {
		t.Fatalf("got %s, want victory", b.Result)
	}
	pl, el := b.Losses()
	if pl <= 0 || el <= 0 {
		t.Errorf("expected losses on both sides, got %d/%d", pl, el)
	}
}

func TestRoutCheck(t *testing.T) {
	b := New("b", "n", "Rival", false,
		Side{Troops: 100, Power: 100, Morale: 25},
		Side{Troops: 100, Power: 100, Morale: 90},
	)
	b.Exchange(&entropy.Fixed{Values: []float64{0.1}})
	if b.Result != Defeat {
		t.Fatalf("low morale with a passing rout roll: got %s, want defeat", b.Result)
	}
}

func TestRetreatAndStrike(t *testing.T) {
	b := New("b", "n", "Rival", false, Side{Troops: 10, Power: 10, Morale: 80}, Side{Troops: 100, Power: 85, Morale: 70})
	if killed := b.Strike(10); killed != 10 {
		t.Errorf("strike: got %d killed, want 10", killed)
	}
	if b.Enemy.Power != 76 {
		t.Errorf("enemy power after strike: got %d, want 76", b.Enemy.Power)
	}
	if !b.Retreat() {
		t.Fatal("retreat from ongoing battle failed")
	}
	if b.Retreat() {
		t.Error("second retreat should be rejected")
	}
	if b.Result != Retreat {
		t.Errorf("got %s, want retreat", b.Result)
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := New("b", "n", "Rival", false, Side{Troops: 10, Power: 10, Morale: 80}, Side{Troops: 10, Power: 10, Morale: 80})
	c := b.Clone()
	c.Log[0].Message = "changed"
	if b.Log[0].Message == "changed" {
		t.Fatal("clone shares its log with the original")
	}
}
