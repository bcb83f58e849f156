package engine

import (
	"testing"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/realm"
)

func TestOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(e *Engine)
		victory bool
		kind    string
	}{
		{"conquest", func(e *Engine) {
			for i := range e.state.Nations {
				e.state.Nations[i].Defeated = true
			}
		}, true, VictoryConquest},
		{"economic", func(e *Engine) {
			e.state.Resources.Gold = EconomicWealth
			for i := range e.state.Nations {
				e.state.Nations[i].AddTreaty(realm.TreatyTrade, 12, 1)
			}
		}, true, VictoryEconomic},
		{"technological", func(e *Engine) {
			research(&e.state, catalog.AscensionTech)
			e.state.Resources.Gold = TechnologicalWealth
		}, true, VictoryTechnological},
		{"annihilation", func(e *Engine) {
			e.state.Population = realm.Population{}
			e.state.SyncMilitary()
		}, false, DefeatAnnihilation},
		{"bankruptcy", func(e *Engine) {
			e.state.Resources.Gold = -100
			e.state.BankruptcyDays = BankruptcyLimit - 1
			e.applyEconomy()
		}, false, DefeatBankruptcy},
		{"revolution", func(e *Engine) {
			e.state.Satisfaction = 0
			e.state.LowSatisfactionDays = RevolutionLimit - 1
			e.applyEconomy()
		}, false, DefeatRevolution},
		{"victory before defeat", func(e *Engine) {
			for i := range e.state.Nations {
				e.state.Nations[i].Defeated = true
			}
			e.state.Population = realm.Population{}
			e.state.SyncMilitary()
		}, true, VictoryConquest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, quiet(), nil)
			tt.setup(e)
			e.evaluate()

			o, ok := e.Outcome()
			if !ok {
				t.Fatal("game did not end")
			}
			if o.Victory != tt.victory || o.Kind != tt.kind {
				t.Errorf("got %+v, want victory=%v kind=%s", o, tt.victory, tt.kind)
			}
			if err := e.state.Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestNoOutcomeYet(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	e.state.Resources.Gold = EconomicWealth // no trade partners
	e.state.BankruptcyDays = BankruptcyLimit - 1
	e.evaluate()
	if _, ok := e.Outcome(); ok {
		t.Error("game ended early")
	}
}

func TestPrestigeAward(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	for i := range e.state.Nations {
		e.state.Nations[i].Defeated = true
	}
	e.state.Conquests = 2
	e.evaluate()
	o, _ := e.Outcome()
	if o.Prestige != 140 || o.Conquests != 2 {
		t.Errorf("got %+v, want 140 prestige", o)
	}

	e = newTestEngine(t, quiet(), nil)
	e.state.Day = 95
	e.lose(DefeatRevolution, "test")
	if o, _ := e.Outcome(); o.Prestige != 3 || o.Day != 95 {
		t.Errorf("got %+v, want 3 prestige", o)
	}
}

func TestResumeFinishedGame(t *testing.T) {
	e := newTestEngine(t, quiet(), nil)
	e.lose(DefeatBankruptcy, "test")

	r := Resume(e.Snapshot(), Options{Seed: 1})
	o, ok := r.Outcome()
	if !ok || o.Kind != DefeatBankruptcy {
		t.Errorf("got %+v, %v", o, ok)
	}
}
