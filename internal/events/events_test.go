package events

import (
	"strings"
	"testing"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/entropy"
	"github.com/talgya/axinode/internal/realm"
)

func TestCatalogCompiles(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range Catalog {
		if seen[e.ID] {
			t.Errorf("duplicate event %s", e.ID)
		}
		seen[e.ID] = true
		if e.Condition != "" && e.program == nil {
			t.Errorf("%s: condition not compiled", e.ID)
		}
		if len(e.Choices) == 0 {
			t.Errorf("%s: no choices", e.ID)
		}
		if !e.Chained && e.Chance == 0 && e.Weight <= 0 {
			t.Errorf("%s: weight %v", e.ID, e.Weight)
		}
		for _, c := range e.Choices {
			if c.Next == "" {
				continue
			}
			next, ok := ByID(c.Next)
			if !ok {
				t.Errorf("%s chains to unknown event %s", e.ID, c.Next)
			} else if !next.Chained {
				t.Errorf("%s chains to %s which is not marked chained", e.ID, c.Next)
			}
		}
	}
}

func TestBadConditionFailsCompile(t *testing.T) {
	e := &Event{ID: "broken", Condition: "Gold >"}
	if err := e.Compile(); err == nil {
		t.Fatal("expected compile error")
	}
	e = &Event{ID: "not_bool", Condition: "Gold + 1"}
	if err := e.Compile(); err == nil {
		t.Fatal("non-boolean condition should not compile")
	}
}

func TestEnvMethods(t *testing.T) {
	s := realm.NewState()
	s.Buildings = append(s.Buildings, realm.Building{ID: "mine_lv1"})
	s.Technologies[0].Researched = true

	env := NewEnv(&s)
	if !env.Built("mine_lv1") || env.Built("market") {
		t.Error("Built mismatch")
	}
	if !env.Researched(s.Technologies[0].ID) {
		t.Error("Researched mismatch")
	}

	e := &Event{ID: "env_check", Condition: `Built("mine_lv1") && Researched("` + s.Technologies[0].ID + `") && Population == 10`}
	if err := e.Compile(); err != nil {
		t.Fatal(err)
	}
	if !e.Eligible(env) {
		t.Error("condition should hold")
	}
}

func TestCandidatesRespectConditions(t *testing.T) {
	s := realm.NewState()
	s.Resources.Gold = 0
	s.Population = realm.Population{Farmers: 1}
	s.Population.Recount()
	s.SyncMilitary()

	for _, e := range Candidates(&s) {
		switch e.ID {
		case "wandering_merchant", "bumper_harvest", "festival", "plague", "mine_collapse":
			t.Errorf("%s should be filtered out", e.ID)
		}
		if e.Chained {
			t.Errorf("chained event %s offered at random", e.ID)
		}
	}
}

func TestPickUsesWeights(t *testing.T) {
	s := realm.NewState()
	s.Resources.Gold = 1000
	s.Resources.Food = 1000
	s.Population = realm.Population{Farmers: 10, Miners: 5, Soldiers: 20, Unemployed: 5}
	s.Population.Recount()
	s.SyncMilitary()

	cands := Candidates(&s)
	if len(cands) == 0 {
		t.Fatal("expected candidates")
	}
	first := Pick(&s, &entropy.Fixed{Values: []float64{0}})
	if first != cands[0] {
		t.Errorf("roll 0 picked %s, want %s", first.ID, cands[0].ID)
	}
	last := Pick(&s, &entropy.Fixed{Values: []float64{0.999999}})
	if last != cands[len(cands)-1] {
		t.Errorf("roll ~1 picked %s, want %s", last.ID, cands[len(cands)-1].ID)
	}
}

func TestPickNothingEligible(t *testing.T) {
	s := realm.NewState()
	s.Population = realm.Population{}
	s.Resources = realm.Resources{}
	s.Satisfaction = 0
	if e := Pick(&s, entropy.NewSeeded(1)); e != nil {
		t.Errorf("picked %s with nothing eligible", e.ID)
	}
}

func TestChooseClampsIndex(t *testing.T) {
	s := realm.NewState()
	e, _ := ByID("bumper_harvest")
	gold := s.Resources.Gold

	c, msg := e.Choose(9, &s, entropy.NewSeeded(1))
	if c.Label != "Sell the surplus" {
		t.Errorf("out of range chose %q", c.Label)
	}
	if msg == "" || s.Resources.Gold != gold+80 {
		t.Errorf("got gold %v msg %q", s.Resources.Gold, msg)
	}
}

func TestChooseKeepsInvariants(t *testing.T) {
	s := realm.NewState()
	s.SetSoldiers(6)
	s.Military.Infantry = 6
	e, _ := ByID("deserters")
	e.Choose(1, &s, entropy.NewSeeded(1))
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	if s.Military.TotalSoldiers != 4 || s.Military.Infantry != 4 {
		t.Errorf("got %d soldiers, %d infantry", s.Military.TotalSoldiers, s.Military.Infantry)
	}
}

func TestHeroOfferRoll(t *testing.T) {
	s := realm.NewState()
	if e := Roll(&s, &entropy.Fixed{Values: []float64{0.5}}); e != nil {
		t.Errorf("roll 0.5 offered %s", e.ID)
	}
	e := Roll(&s, &entropy.Fixed{Values: []float64{0}})
	if e == nil || e.ID != "wandering_hero" {
		t.Fatalf("got %v, want wandering_hero", e)
	}
	for _, c := range Candidates(&s) {
		if c.ID == "wandering_hero" {
			t.Error("hero offer joined the weighted draw")
		}
	}

	for _, h := range catalog.Heroes {
		s.Heroes = append(s.Heroes, realm.NewHero(h.ID, 1, entropy.NewSeeded(1)))
	}
	if e := Roll(&s, &entropy.Fixed{Values: []float64{0}}); e != nil {
		t.Errorf("offered %s with every hero hired", e.ID)
	}
}

func TestHeroOfferChoice(t *testing.T) {
	e, _ := ByID("wandering_hero")

	s := realm.NewState()
	s.Resources.Gold = 1000
	_, msg := e.Choose(0, &s, &entropy.Fixed{Values: []float64{0, 0.5}})
	if len(s.Heroes) != 1 {
		t.Fatalf("got %d heroes, want 1 (%s)", len(s.Heroes), msg)
	}
	h := s.Heroes[0]
	first := catalog.Heroes[0]
	if h.TemplateID != first.ID || h.Level != 1 || h.Loyalty != realm.HeroMinLoyalty+15 {
		t.Errorf("got hero %+v", h)
	}
	if s.Resources.Gold != 1000-first.Salary {
		t.Errorf("got gold %v, want %v", s.Resources.Gold, 1000-first.Salary)
	}

	poor := realm.NewState()
	poor.Resources.Gold = 10
	_, msg = e.Choose(0, &poor, &entropy.Fixed{Values: []float64{0}})
	if len(poor.Heroes) != 0 || poor.Resources.Gold != 10 {
		t.Errorf("hero joined an empty treasury: %+v gold %v", poor.Heroes, poor.Resources.Gold)
	}
	if !strings.Contains(msg, "will not serve") {
		t.Errorf("got message %q", msg)
	}
}
