package engine

import (
	"fmt"
	"math"

	"github.com/talgya/axinode/internal/economy"
	"github.com/talgya/axinode/internal/realm"
)

// StarvationRate is the monthly share of the population lost while food
// runs out, applied as a daily fraction.
const StarvationRate = 0.05

// applyEconomy runs the daily production, consumption and cash flow.
func (e *Engine) applyEconomy() {
	s := &e.state
	r := &s.Resources

	r.Food += float64(economy.FoodProduction(s) - economy.FoodConsumption(s))
	r.Ore += float64(economy.OreProduction(s))
	r.Weapons += float64(economy.WeaponProduction(s))
	r.Armor += float64(economy.ArmorProduction(s))
	r.Mana += float64(economy.ManaProduction(s) - economy.ManaConsumption(s))
	r.Gold += economy.DailyCashFlow(s)

	s.Military.EquipmentRate = economy.EquipmentRate(s)
	e.expireEffects()

	if r.Food < 0 {
		r.Food = 0
		e.starve()
	}
	r.Clamp()

	if r.Gold < 0 {
		s.BankruptcyDays++
	} else {
		s.BankruptcyDays = 0
	}
	if s.Satisfaction == 0 {
		s.LowSatisfactionDays++
	} else {
		s.LowSatisfactionDays = 0
	}
}

// starve removes the day's famine victims, soldiers last.
func (e *Engine) starve() {
	s := &e.state
	total := s.Population.Total
	if total == 0 {
		return
	}
	n := max(1, int(math.Ceil(float64(total)*StarvationRate/DaysPerMonth)))
	lost := s.Population.Remove(n, realm.StarvationOrder)
	s.SyncMilitary()
	s.AddLog(realm.CategoryImportant, realm.PriorityCritical,
		fmt.Sprintf("Famine! %d people starved to death.", lost))
}

// expireEffects drops timed effects whose day has passed.
func (e *Engine) expireEffects() {
	s := &e.state
	kept := s.ActiveEffects[:0]
	for _, fx := range s.ActiveEffects {
		if fx.ExpiresDay > s.Day {
			kept = append(kept, fx)
			continue
		}
		s.Logf(realm.CategoryDomestic, "The effect of %s has faded.", fx.Source)
	}
	s.ActiveEffects = kept
}
