package engine

import (
	"strings"
	"testing"

	"github.com/talgya/axinode/internal/economy"
	"github.com/talgya/axinode/internal/realm"
)

func research(s *realm.State, ids ...string) {
	for _, id := range ids {
		for i := range s.Technologies {
			if s.Technologies[i].ID == id {
				s.Technologies[i].Researched = true
			}
		}
	}
}

func TestConstructionQueue(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.Resources.Gold = 10000

	if r := e.StartConstruction("farm_lv1"); !r.Success {
		t.Fatalf("first farm: %s", r.Message)
	}
	if s.Resources.Gold != 9900 || len(s.ConstructionQueue) != 1 {
		t.Fatalf("got gold %v, queue %d", s.Resources.Gold, len(s.ConstructionQueue))
	}

	r := e.StartConstruction("farm_lv1")
	if r.Success || !strings.Contains(r.Message, "capacity") {
		t.Errorf("second farm: got %+v, want capacity failure", r)
	}
	if s.Resources.Gold != 9900 {
		t.Errorf("failed command spent gold: %v", s.Resources.Gold)
	}

	e.advanceQueues(29)
	if s.BuiltCount("farm_lv1") != 0 {
		t.Fatal("farm finished early")
	}
	e.advanceQueues(1)
	if s.BuiltCount("farm_lv1") != 1 || len(s.ConstructionQueue) != 0 {
		t.Errorf("farm not built: %d built, %d queued", s.BuiltCount("farm_lv1"), len(s.ConstructionQueue))
	}
}

func TestConstructionValidation(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		gold  float64
		setup func(s *realm.State)
		want  string
	}{
		{"unknown with hint", "farm_lvl1", 10000, nil, `Did you mean "farm_lv1"?`},
		{"missing building prerequisite", "farm_lv2", 10000, nil, "requires Farm Lv1"},
		{"missing tech prerequisite", "counting_house", 10000, nil, "requires Taxation"},
		{"insufficient gold", "farm_lv1", 50, nil, "Insufficient resources"},
		{"unique building built", "market", 10000, func(s *realm.State) {
			s.Buildings = append(s.Buildings, realm.Building{ID: "market"})
		}, "limited to 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, quiet(), nil)
			e.state.Resources.Gold = tt.gold
			if tt.setup != nil {
				tt.setup(&e.state)
			}
			r := e.StartConstruction(tt.id)
			if r.Success {
				t.Fatalf("got success, want failure containing %q", tt.want)
			}
			if !strings.Contains(r.Message, tt.want) {
				t.Errorf("got %q, want it to contain %q", r.Message, tt.want)
			}
			if e.state.Resources.Gold != tt.gold {
				t.Errorf("failed command changed gold to %v", e.state.Resources.Gold)
			}
		})
	}
}

func TestCancelRefundsHalf(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.Resources.Gold = 10000
	e.StartConstruction("farm_lv1")

	if r := e.CancelConstruction(3); r.Success {
		t.Error("cancelled a missing order")
	}
	if r := e.CancelConstruction(0); !r.Success {
		t.Fatalf("cancel: %s", r.Message)
	}
	if s.Resources.Gold != 9950 || len(s.ConstructionQueue) != 0 {
		t.Errorf("got gold %v, queue %d", s.Resources.Gold, len(s.ConstructionQueue))
	}

	e.StartResearch("taxation")
	e.CancelResearch(0)
	if s.Resources.Gold != 9950-125 {
		t.Errorf("research refund: got gold %v", s.Resources.Gold)
	}
}

func TestResearchUnlocksSlots(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.Resources.Gold = 10000

	if r := e.StartResearch("architecture"); !r.Success {
		t.Fatalf("start research: %s", r.Message)
	}
	e.advanceQueues(150)
	if !s.Researched("architecture") {
		t.Fatal("architecture not researched")
	}
	if got := economy.ConstructionCap(s); got != 2 {
		t.Errorf("got construction cap %d, want 2", got)
	}
	e.StartConstruction("farm_lv1")
	if r := e.StartConstruction("farm_lv1"); !r.Success {
		t.Errorf("second slot: %s", r.Message)
	}
}

func TestResearchValidation(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.Resources.Gold = 10000

	if r := e.StartResearch("scholarship"); r.Success || !strings.Contains(r.Message, "requires Taxation") {
		t.Errorf("prerequisite: got %+v", r)
	}
	research(s, "taxation")
	if r := e.StartResearch("taxation"); r.Success || !strings.Contains(r.Message, "already researched") {
		t.Errorf("duplicate: got %+v", r)
	}
	if r := e.StartResearch("magik_theory"); r.Success || !strings.Contains(r.Message, "magic_theory") {
		t.Errorf("unknown: got %+v", r)
	}
	if s.Resources.Gold != 10000 {
		t.Errorf("failed commands spent gold: %v", s.Resources.Gold)
	}
}

func TestAssignPopulation(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state

	tests := []struct {
		job   string
		count int
		ok    bool
	}{
		{"farmers", 9, false}, // only 3 unemployed
		{"priests", 1, false}, // unknown job
		{"unemployed", 1, false},
		{"miners", -1, false},
		{"soldiers", 5, true},
		{"farmers", 2, true}, // frees 3
		{"craftsmen", 3, true},
	}
	for _, tt := range tests {
		r := e.AssignPopulation(tt.job, tt.count)
		if r.Success != tt.ok {
			t.Errorf("assign %s=%d: got %+v", tt.job, tt.count, r)
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("after assign %s=%d: %v", tt.job, tt.count, err)
		}
	}
	want := realm.Population{Total: 10, Farmers: 2, Craftsmen: 3, Soldiers: 5}
	if s.Population != want {
		t.Errorf("got %+v, want %+v", s.Population, want)
	}
	if s.Military.TotalSoldiers != 5 {
		t.Errorf("got %d soldiers in the army", s.Military.TotalSoldiers)
	}
}

func TestOrganizeUnits(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	m := &e.state.Military

	if r := e.OrganizeUnits(UnitInfantry, 2); !r.Success {
		t.Fatalf("organize: %s", r.Message)
	}
	for _, tt := range []struct {
		unit  string
		count int
	}{
		{UnitArchers, 1},
		{UnitInfantry, 3},
		{UnitCavalry, -1},
		{"pikemen", 1},
	} {
		if r := e.OrganizeUnits(tt.unit, tt.count); r.Success {
			t.Errorf("organize %s=%d succeeded", tt.unit, tt.count)
		}
	}

	e.AssignPopulation("soldiers", 1)
	if m.Infantry != 1 || m.TotalSoldiers != 1 {
		t.Errorf("units not trimmed: %+v", *m)
	}
}

func TestMageWarriors(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	s.SetSoldiers(10)

	if r := e.OrganizeUnits(UnitMages, 4); r.Success {
		t.Fatal("mage warriors trained without magic theory")
	}
	research(s, MageTechnology)
	if r := e.OrganizeUnits(UnitMages, 4); !r.Success {
		t.Fatalf("organize mages: %s", r.Message)
	}
	if r := e.OrganizeUnits(UnitCavalry, 7); r.Success {
		t.Error("cavalry took soldiers already serving as mages")
	}
	if got := s.Military.Forces().Mages; got != 4 {
		t.Errorf("got %d mages in the battle line, want 4", got)
	}

	s.Resources.Mana = 10
	e.applyEconomy()
	if s.Resources.Mana != 6 {
		t.Errorf("got mana %v after upkeep, want 6", s.Resources.Mana)
	}
}

func TestSettings(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state

	if r := e.SetTaxRate(0.6); r.Success {
		t.Error("accepted tax rate above the maximum")
	}
	if r := e.SetTaxRate(-0.1); r.Success {
		t.Error("accepted a negative tax rate")
	}
	if r := e.SetTaxRate(0.3); !r.Success || s.TaxRate != 0.3 {
		t.Errorf("got %+v, rate %v", r, s.TaxRate)
	}

	if r := e.SetSpeed(3); r.Success {
		t.Error("accepted speed 3")
	}
	if r := e.SetSpeed(5); !r.Success || s.Speed != 5 {
		t.Errorf("got %+v, speed %d", r, s.Speed)
	}

	e.TogglePause()
	if !s.Paused {
		t.Error("toggle did not pause")
	}
	e.TogglePause()
	if s.Paused {
		t.Error("toggle did not resume")
	}
}

func TestPersonnel(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state

	if r := e.HireSpecialist("olga"); !r.Success {
		t.Fatalf("hire: %s", r.Message)
	}
	if r := e.HireSpecialist("olga"); r.Success {
		t.Error("hired the same specialist twice")
	}
	if r := e.HireSpecialist("olgaa"); r.Success || !strings.Contains(r.Message, `"olga"`) {
		t.Errorf("got %+v, want a suggestion", r)
	}
	if s.Specialists[0].ID == "" || s.Specialists[0].ID == "olga" {
		t.Errorf("got instance ID %q", s.Specialists[0].ID)
	}
	if r := e.DismissSpecialist(s.Specialists[0].ID); !r.Success {
		t.Errorf("dismiss by instance ID: %s", r.Message)
	}
	if r := e.DismissSpecialist("olga"); r.Success {
		t.Error("dismissed a specialist twice")
	}

	s.Resources.Gold = 0
	if r := e.HireHero("zeno"); r.Success {
		t.Error("hired a hero without gold")
	}
	s.Resources.Gold = 1000
	if r := e.HireHero("zeno"); !r.Success {
		t.Fatalf("hire hero: %s", r.Message)
	}
	if h := s.Heroes[0]; h.Level != 1 || h.Loyalty < realm.HeroMinLoyalty || h.Loyalty >= 100 {
		t.Errorf("got hero level %d loyalty %d", h.Level, h.Loyalty)
	}
	if r := e.DismissHero("zeno"); !r.Success || len(s.Heroes) != 0 {
		t.Errorf("dismiss hero: %+v", r)
	}
}

func TestTerminalStateIsFrozen(t *testing.T) {
	e := newTestEngine(t, always(), nil)
	e.lose(DefeatBankruptcy, "test")
	before := e.Snapshot()

	results := []Result{
		e.TogglePause(),
		e.SetSpeed(2),
		e.SetTaxRate(0.2),
		e.AssignPopulation("miners", 1),
		e.StartConstruction("farm_lv1"),
		e.StartResearch("taxation"),
		e.HireSpecialist("olga"),
		e.AttackNation(before.Nations[0].ID),
		e.ProposeTradeAgreement(before.Nations[0].ID),
		e.ExecuteEspionage(SpyScout, before.Nations[0].ID),
		e.CastMagic("blessing", ""),
	}
	for i, r := range results {
		if r.Success || r.Message != "The game has ended." {
			t.Errorf("command %d: got %+v", i, r)
		}
	}
	for i := 0; i < 20; i++ {
		e.Tick(1)
	}

	after := e.Snapshot()
	if after.Day != before.Day || after.Resources != before.Resources ||
		after.Population != before.Population || after.Military != before.Military {
		t.Error("terminal state changed")
	}
}

func TestCastMagic(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state

	if r := e.CastMagic("blessing", ""); r.Success {
		t.Error("cast without mana")
	}
	s.Resources.Mana = 100
	if r := e.CastMagic("blessing", ""); !r.Success {
		t.Fatalf("blessing: %s", r.Message)
	}
	if s.Satisfaction != 70 || s.Resources.Mana != 50 {
		t.Errorf("got satisfaction %d, mana %v", s.Satisfaction, s.Resources.Mana)
	}

	s.Resources.Mana = 200
	if r := e.CastMagic("harvest", ""); r.Success || !strings.Contains(r.Message, "Magic Theory") {
		t.Errorf("harvest without research: %+v", r)
	}
	research(s, "magic_theory")
	e.CastMagic("harvest", "")
	e.CastMagic("harvest", "")
	if len(s.ActiveEffects) != 1 || s.Resources.Mana != 80 {
		t.Errorf("got effects %+v, mana %v", s.ActiveEffects, s.Resources.Mana)
	}
	if fx := s.ActiveEffects[0]; fx.ExpiresDay != s.Day+15 {
		t.Errorf("got expiry %v", fx.ExpiresDay)
	}
}

func TestFireball(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	s := &e.state
	research(s, "magic_theory", "elemental_magic")
	s.Resources.Mana = 300
	n := &s.Nations[0]
	n.MilitaryPower = 400

	if r := e.CastMagic("fireball", ""); r.Success {
		t.Error("fireball without a target succeeded")
	}
	if r := e.CastMagic("fireball", n.ID); !r.Success {
		t.Fatalf("fireball: %s", r.Message)
	}
	if n.MilitaryPower != 380 || n.Relation != -10 {
		t.Errorf("got power %d, relation %v", n.MilitaryPower, n.Relation)
	}
	if s.Resources.Mana != 200 {
		t.Errorf("got mana %v", s.Resources.Mana)
	}
}
