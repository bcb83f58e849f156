package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/realm"
)

// Victory and defeat thresholds.
const (
	EconomicWealth      = 100000
	TechnologicalWealth = 50000
	BankruptcyLimit     = 30 // consecutive days in debt
	RevolutionLimit     = 7  // consecutive days at zero satisfaction
)

// Victory types and defeat reasons.
const (
	VictoryConquest      = "conquest"
	VictoryEconomic      = "economic"
	VictoryTechnological = "technological"

	DefeatAnnihilation = "annihilation"
	DefeatBankruptcy   = "bankruptcy"
	DefeatRevolution   = "revolution"
)

// evaluate checks victory first, then defeat. The first match ends the game.
func (e *Engine) evaluate() {
	s := &e.state
	if s.Terminal() {
		return
	}

	wealth := s.Resources.Wealth()
	living := s.LivingNations()
	switch {
	case len(s.Nations) > 0 && len(living) == 0:
		e.win(VictoryConquest, "Every rival nation has fallen. The continent is ours.")
	case wealth >= EconomicWealth && allTrading(living):
		e.win(VictoryEconomic, "Our merchants bind the world together. Ours is the richest nation.")
	case s.Researched(catalog.AscensionTech) && wealth >= TechnologicalWealth:
		e.win(VictoryTechnological, "Our nation has ascended beyond the mortal age.")
	}
	if s.Terminal() {
		return
	}

	switch {
	case s.Population.Total == 0:
		e.lose(DefeatAnnihilation, "Not a soul remains. The nation is no more.")
	case s.BankruptcyDays >= BankruptcyLimit:
		e.lose(DefeatBankruptcy, "The treasury has been empty for a month. The state collapses.")
	case s.LowSatisfactionDays >= RevolutionLimit:
		e.lose(DefeatRevolution, "The people rise up and overthrow the crown.")
	}
}

func allTrading(nations []*realm.Nation) bool {
	for _, n := range nations {
		if !n.HasTreaty(realm.TreatyTrade) {
			return false
		}
	}
	return true
}

func (e *Engine) win(kind, message string) {
	s := &e.state
	s.Victory = true
	s.VictoryType = kind
	s.AddLog(realm.CategoryImportant, realm.PriorityCritical, fmt.Sprintf("Victory (%s)! %s", kind, message))
	e.recordOutcome()
}

func (e *Engine) lose(reason, message string) {
	s := &e.state
	s.GameOver = true
	s.GameOverReason = reason
	s.AddLog(realm.CategoryImportant, realm.PriorityCritical, fmt.Sprintf("Defeat (%s). %s", reason, message))
	e.recordOutcome()
}

// recordOutcome fixes the result and prestige award of a finished game.
func (e *Engine) recordOutcome() {
	s := &e.state
	o := Outcome{
		Victory:   s.Victory,
		Kind:      s.GameOverReason,
		Day:       s.DayNumber(),
		Conquests: s.Conquests,
		Prestige:  realm.Award(s),
	}
	if s.Victory {
		o.Kind = s.VictoryType
	}
	e.outcome = &o
	slog.Info("game finished", "victory", o.Victory, "kind", o.Kind, "day", o.Day, "prestige", o.Prestige)
}
