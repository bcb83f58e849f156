package realm

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/entropy"
)

func TestNewStateIsValid(t *testing.T) {
	s := NewState()
	if err := s.Validate(); err != nil {
		t.Fatalf("default state invalid: %v", err)
	}
	if s.Population.Total != InitialPopulation {
		t.Errorf("got population %d, want %d", s.Population.Total, InitialPopulation)
	}
	if s.Military.TotalSoldiers != 2 {
		t.Errorf("got %d soldiers, want 2", s.Military.TotalSoldiers)
	}
	if !s.Paused {
		t.Error("a new game should start paused")
	}
}

func TestSeedNations(t *testing.T) {
	a := NewState()
	a.SeedNations(entropy.NewSeeded(3))
	b := NewState()
	b.SeedNations(entropy.NewSeeded(3))

	if len(a.Nations) != 5 {
		t.Fatalf("got %d nations, want 5", len(a.Nations))
	}
	seen := map[string]bool{}
	for i, n := range a.Nations {
		if n.ID != fmt.Sprintf("nation_%d", i+1) {
			t.Errorf("nation %d has id %s", i, n.ID)
		}
		if n.EconomicPower != n.Population/2 {
			t.Errorf("%s: economic power %d, want %d", n.Name, n.EconomicPower, n.Population/2)
		}
		if seen[n.Name] {
			t.Errorf("duplicate nation %s", n.Name)
		}
		seen[n.Name] = true
		if b.Nations[i].Name != n.Name {
			t.Errorf("same seed drew different rosters: %s vs %s", n.Name, b.Nations[i].Name)
		}
	}
}

func TestReassign(t *testing.T) {
	p := Population{Farmers: 5, Soldiers: 2, Unemployed: 3}
	p.Recount()

	if err := p.Reassign(Miners, 3); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if p.Miners != 3 || p.Unemployed != 0 || p.Total != 10 {
		t.Errorf("got %+v", p)
	}
	if err := p.Reassign(Farmers, 6); err == nil {
		t.Error("expected failure when unemployed would go negative")
	}
	if p.Farmers != 5 {
		t.Errorf("failed reassign mutated farmers to %d", p.Farmers)
	}
	if err := p.Reassign(Farmers, 1); err != nil {
		t.Fatalf("shrink farmers: %v", err)
	}
	if p.Unemployed != 4 || p.Total != 10 {
		t.Errorf("after shrink got %+v", p)
	}
	if err := p.Reassign(Unemployed, 1); err == nil {
		t.Error("unemployed is not assignable")
	}
}

func TestRemoveCascade(t *testing.T) {
	p := Population{Farmers: 3, Miners: 2, Craftsmen: 1, Soldiers: 4, Unemployed: 1}
	p.Recount()

	got := p.Remove(5, DeclineOrder)
	if got != 5 {
		t.Fatalf("removed %d, want 5", got)
	}
	want := Population{Total: 6, Farmers: 0, Miners: 1, Craftsmen: 1, Soldiers: 4, Unemployed: 0}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}

	got = p.Remove(10, DeclineOrder)
	if got != 2 || p.Soldiers != 4 || p.Total != 4 {
		t.Errorf("decline must stop before soldiers: removed %d, %+v", got, p)
	}
}

func TestSetSoldiersTrimsUnits(t *testing.T) {
	s := NewState()
	s.SetSoldiers(10)
	s.Military.Infantry = 4
	s.Military.Archers = 4
	s.Military.Cavalry = 2

	s.SetSoldiers(5)
	if s.Military.TotalSoldiers != 5 {
		t.Fatalf("got %d soldiers, want 5", s.Military.TotalSoldiers)
	}
	if s.Military.Infantry != 0 || s.Military.Archers != 3 || s.Military.Cavalry != 2 {
		t.Errorf("got units %d/%d/%d, want 0/3/2", s.Military.Infantry, s.Military.Archers, s.Military.Cavalry)
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestTrimReachesMageWarriors(t *testing.T) {
	s := NewState()
	s.SetSoldiers(10)
	s.Military.Infantry = 2
	s.Military.MageWarriors = 8

	s.SetSoldiers(3)
	if s.Military.Infantry != 0 || s.Military.MageWarriors != 3 {
		t.Errorf("got %d infantry, %d mages, want 0 and 3", s.Military.Infantry, s.Military.MageWarriors)
	}
	if s.Military.Unassigned() != 0 {
		t.Errorf("got %d unassigned", s.Military.Unassigned())
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestNewHero(t *testing.T) {
	s := NewState()
	for _, v := range []float64{0, 0.5, 0.999} {
		h := NewHero("rin", 12, &entropy.Fixed{Values: []float64{v}})
		if h.Level != 1 || h.HiredAt != 12 || h.TemplateID != "rin" || h.ID == "" {
			t.Errorf("got %+v", h)
		}
		if h.Loyalty < HeroMinLoyalty || h.Loyalty > 99 {
			t.Errorf("roll %v: loyalty %d out of range", v, h.Loyalty)
		}
	}

	if got := len(s.AvailableHeroes()); got != len(catalog.Heroes) {
		t.Fatalf("got %d available heroes, want %d", got, len(catalog.Heroes))
	}
	s.Heroes = append(s.Heroes, NewHero("rin", 1, entropy.NewSeeded(1)))
	for _, h := range s.AvailableHeroes() {
		if h.ID == "rin" {
			t.Error("hired hero still offered")
		}
	}
}

func TestLogCapacityNewestFirst(t *testing.T) {
	s := NewState()
	for i := 0; i < 60; i++ {
		s.Logf(CategoryDomestic, "entry %d", i)
	}
	if len(s.Log) != LogCapacity {
		t.Fatalf("got %d entries, want %d", len(s.Log), LogCapacity)
	}
	if s.Log[0].Message != "entry 59" {
		t.Errorf("newest entry: got %q", s.Log[0].Message)
	}
}

func TestClockTime(t *testing.T) {
	tests := []struct {
		day  float64
		want string
	}{
		{1, "00:00"},
		{1.5, "12:00"},
		{3.75, "18:00"},
	}
	for _, tt := range tests {
		if got := ClockTime(tt.day); got != tt.want {
			t.Errorf("ClockTime(%v) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewState()
	s.SeedNations(entropy.NewSeeded(1))
	s.Nations[0].AddTreaty(TreatyTrade, 12, 1)

	c := s.Clone()
	c.Nations[0].Treaties[0].Duration = 1
	c.Technologies[0].Researched = true
	c.Log[0].Message = "changed"

	if s.Nations[0].Treaties[0].Duration != 12 {
		t.Error("clone shares treaties")
	}
	if s.Technologies[0].Researched {
		t.Error("clone shares technologies")
	}
	if s.Log[0].Message == "changed" {
		t.Error("clone shares the log")
	}
}

func TestCloneKeepsEmptyLists(t *testing.T) {
	s := NewState()
	s.Buildings = nil
	s.PendingEvents = []string{}
	s.Nations = []Nation{{ID: "nation_1"}}

	c := s.Clone()
	if c.Buildings == nil || c.PendingEvents == nil || c.Heroes == nil || c.Nations[0].Treaties == nil {
		t.Fatal("clone returned a nil list")
	}
	body, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"buildings":[]`, `"pending_events":[]`, `"treaties":[]`} {
		if !strings.Contains(string(body), key) {
			t.Errorf("encoded clone lacks %s", key)
		}
	}
}

func TestPrestige(t *testing.T) {
	s := NewState()
	s.Victory = true
	s.Conquests = 2

	var p Prestige
	if got := p.Record(&s); got != 140 {
		t.Fatalf("victory award: got %d, want 140", got)
	}
	if p.ClearCount != 1 {
		t.Errorf("clear count: got %d, want 1", p.ClearCount)
	}
	if err := p.Buy("treasury"); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := p.Buy("treasury"); err == nil {
		t.Error("buying twice should fail")
	}
	if err := p.Buy("tresury"); err == nil {
		t.Error("unknown upgrade should fail")
	}
	if p.Points != 90 {
		t.Errorf("points: got %d, want 90", p.Points)
	}

	fresh := NewState()
	fresh.ApplyUpgrades(p.Upgrades)
	if fresh.Resources.Gold != InitialGold+300 {
		t.Errorf("gold with treasury: got %v", fresh.Resources.Gold)
	}
}
