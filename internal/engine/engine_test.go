package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/talgya/axinode/internal/entropy"
	"github.com/talgya/axinode/internal/realm"
)

// quiet fails every probability roll below 0.99.
func quiet() entropy.Source { return &entropy.Fixed{Values: []float64{0.99}} }

// always passes every probability roll.
func always() entropy.Source { return &entropy.Fixed{Values: []float64{0}} }

func newTestEngine(t *testing.T, rng entropy.Source, p Presenter) *Engine {
	t.Helper()
	e := New(Options{Seed: 7, Random: rng, Presenter: p})
	e.state.Paused = false
	if err := e.state.Validate(); err != nil {
		t.Fatalf("fresh state invalid: %v", err)
	}
	return e
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func hasLog(s *realm.State, substr string) bool {
	for _, l := range s.Log {
		if strings.Contains(l.Message, substr) {
			return true
		}
	}
	return false
}

func TestTickZeroChangesNothing(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	before := e.Snapshot()
	e.Tick(0)
	e.Tick(-3)
	e.Tick(math.NaN())
	after := e.Snapshot()
	if after.Day != before.Day || after.Resources != before.Resources || after.Population != before.Population {
		t.Errorf("tick(0) mutated state: %+v -> %+v", before.Resources, after.Resources)
	}
}

func TestTickClampsElapsed(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	e.Tick(100)
	if !approx(e.state.Day, 1.1) {
		t.Errorf("got day %v, want 1.1", e.state.Day)
	}
}

func TestPausedDoesNotAdvance(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	e.state.Paused = true
	e.Tick(1)
	if e.state.Day != 1 {
		t.Errorf("paused game advanced to day %v", e.state.Day)
	}
	e.state.Paused = false
	e.state.EventPaused = true
	e.Tick(1)
	if e.state.Day != 1 {
		t.Errorf("event-paused game advanced to day %v", e.state.Day)
	}
}

func TestDayBoundaryFiresOnce(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	e.state.Speed = 20

	e.Tick(1) // two days pass, one daily update fires
	s := e.state
	if !approx(s.Day, 3) {
		t.Fatalf("got day %v, want 3", s.Day)
	}
	// 5 farmers produce 5; 8 civilians and 2 soldiers eat 11.
	if s.Resources.Food != 94 {
		t.Errorf("got food %v, want 94", s.Resources.Food)
	}
	// Tax 1, maintenance 10, spread over 30 days.
	if !approx(s.Resources.Gold, 499.7) {
		t.Errorf("got gold %v, want 499.7", s.Resources.Gold)
	}
}

func TestMonthlyGrowth(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.Population = realm.Population{Farmers: 40, Unemployed: 10}
	s.Population.Recount()
	s.SyncMilitary()
	s.Resources.Food = 5000

	e.monthly()
	if s.Satisfaction < GrowthThreshold {
		t.Fatalf("satisfaction %d below growth threshold", s.Satisfaction)
	}
	if s.Population.Total != 51 || s.Population.Unemployed != 11 {
		t.Errorf("got %+v, want total 51 and 11 unemployed", s.Population)
	}
}

func TestMonthlyDecline(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.Population = realm.Population{Farmers: 100}
	s.Population.Recount()
	s.SyncMilitary()
	s.Resources.Food = 0

	e.monthly()
	if s.Satisfaction > DeclineThreshold {
		t.Fatalf("satisfaction %d above decline threshold", s.Satisfaction)
	}
	if s.Population.Total != 99 || s.Population.Farmers != 99 {
		t.Errorf("got %+v, want 99 farmers", s.Population)
	}
}

func TestMonthlyTreatiesAndNations(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	n := &s.Nations[0]
	n.AddTreaty(realm.TreatyTrade, 1, 1)
	n.AddTreaty(realm.TreatyNonAggression, 3, 1)
	pop := n.Population

	e.monthly()
	if n.HasTreaty(realm.TreatyTrade) {
		t.Error("one-month treaty should have expired")
	}
	if !n.HasTreaty(realm.TreatyNonAggression) || n.Treaties[0].Duration != 2 {
		t.Errorf("got treaties %+v", n.Treaties)
	}
	if n.Population != pop+max(1, pop/100) {
		t.Errorf("got population %d from %d", n.Population, pop)
	}
	if !hasLog(s, "expired") {
		t.Error("expiry was not logged")
	}
}

func TestStarvation(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.Population = realm.Population{Unemployed: 28, Soldiers: 2}
	s.Population.Recount()
	s.SyncMilitary()
	s.Resources.Food = 0

	e.applyEconomy()
	if s.Resources.Food != 0 {
		t.Errorf("food went to %v", s.Resources.Food)
	}
	if s.Population.Total != 29 || s.Population.Unemployed != 27 {
		t.Errorf("got %+v, want one unemployed starved", s.Population)
	}
	if s.Log[0].Priority != realm.PriorityCritical {
		t.Errorf("famine logged at %s", s.Log[0].Priority)
	}
}

func TestActiveEffectsExpire(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.ActiveEffects = []realm.ActiveEffect{
		{Source: "harvest", Type: "foodProduction", Value: 50, ExpiresDay: 1.5},
		{Source: "barrier", Type: "defenseBonus", Value: 30, ExpiresDay: 10},
	}
	s.Day = 2
	e.applyEconomy()
	if len(s.ActiveEffects) != 1 || s.ActiveEffects[0].Source != "barrier" {
		t.Errorf("got effects %+v", s.ActiveEffects)
	}
}

func TestFailureCounters(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.Resources.Gold = -10
	s.Satisfaction = 0
	e.applyEconomy()
	if s.BankruptcyDays != 1 || s.LowSatisfactionDays != 1 {
		t.Fatalf("got counters %d/%d", s.BankruptcyDays, s.LowSatisfactionDays)
	}
	s.Resources.Gold = 100
	s.Satisfaction = 5
	e.applyEconomy()
	if s.BankruptcyDays != 0 || s.LowSatisfactionDays != 0 {
		t.Errorf("counters not reset: %d/%d", s.BankruptcyDays, s.LowSatisfactionDays)
	}
}

func TestSubscribe(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	calls := 0
	unsubscribe := e.Subscribe(func(s realm.State) {
		calls++
		s.Resources.Gold = -1e6
	})

	e.Tick(0)
	e.SetSpeed(2)
	if calls != 2 {
		t.Errorf("got %d notifications, want 2", calls)
	}
	if e.state.Resources.Gold < 0 {
		t.Error("subscriber mutated engine state")
	}
	unsubscribe()
	e.Tick(0)
	if calls != 2 {
		t.Errorf("notified after unsubscribe")
	}
}

func TestInvariantsHoldOverLongRun(t *testing.T) {
	e := New(Options{Seed: 42})
	e.state.Paused = false
	e.state.Speed = 20
	e.AssignPopulation("miners", 2)
	e.AssignPopulation("craftsmen", 1)

	var ended *realm.State
	for i := 0; i < 5000; i++ {
		e.Tick(1)
		s := &e.state
		if err := s.Validate(); err != nil {
			t.Fatalf("tick %d (day %v): %v", i, s.Day, err)
		}
		if s.Battle != nil && s.Battle.Resolved {
			e.CloseBattle()
		}
		if s.Terminal() {
			snap := e.Snapshot()
			ended = &snap
			break
		}
	}
	if ended == nil {
		return
	}

	for i := 0; i < 10; i++ {
		e.Tick(1)
	}
	e.StartConstruction("farm_lv1")
	e.TogglePause()
	after := e.Snapshot()
	if after.Day != ended.Day || after.Resources != ended.Resources ||
		after.Population != ended.Population || after.Military != ended.Military {
		t.Error("terminal state changed")
	}
}

func TestResumeContinuesRandomStream(t *testing.T) {
	e := New(Options{Seed: 9})
	for range 5 {
		e.rng.Float64()
	}
	saved := e.Snapshot()
	if len(saved.RandomState) == 0 {
		t.Fatal("snapshot lacks the stream position")
	}
	want := e.rng.Float64()

	r := Resume(saved, Options{Seed: 9})
	if got := r.rng.Float64(); got != want {
		t.Errorf("resumed stream drew %v, want %v", got, want)
	}
	if r.state.RandomState != nil {
		t.Error("stream position kept in the live state")
	}
}

func TestResumeWithoutStreamPosition(t *testing.T) {
	e := New(Options{Seed: 9})
	saved := e.Snapshot()
	saved.RandomState = nil
	saved.Day = 40

	first := entropy.NewSeeded(9).Float64()
	a := Resume(saved, Options{Seed: 9}).rng.Float64()
	if a == first {
		t.Error("resume replayed the first roll of the game")
	}
	saved.Day = 41
	if b := Resume(saved, Options{Seed: 9}).rng.Float64(); b == a {
		t.Error("resumes on different days drew the same roll")
	}
}
