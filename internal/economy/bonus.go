package economy

import (
	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/realm"
)

// Bonus sums the percentage bonuses of every matching effect type across
// completed buildings, researched technologies, hired personnel and active
// effects.
func Bonus(s *realm.State, types ...string) float64 {
	match := func(t string) bool {
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	}

	total := 0.0
	for _, b := range s.Buildings {
		if def, ok := catalog.Building(b.ID); ok && match(def.Effect.Type) {
			total += def.Effect.Value
		}
	}
	for _, t := range s.Technologies {
		if !t.Researched {
			continue
		}
		if def, ok := catalog.Technology(t.ID); ok && match(def.Effect.Type) {
			total += def.Effect.Value
		}
	}
	for _, sp := range s.Specialists {
		if def, ok := catalog.Specialist(sp.TemplateID); ok && match(def.Bonus.Type) {
			total += def.Bonus.Value
		}
	}
	for _, h := range s.Heroes {
		if def, ok := catalog.Hero(h.TemplateID); ok && match(def.Effect.Type) {
			total += def.Effect.Value
		}
	}
	for _, e := range s.ActiveEffects {
		if match(e.Type) {
			total += e.Value
		}
	}
	return total
}

// TreatyBonus is the production bonus from active trade treaties.
func TreatyBonus(s *realm.State) float64 {
	n := 0
	for _, nation := range s.Nations {
		if !nation.Defeated && nation.HasTreaty(realm.TreatyTrade) {
			n++
		}
	}
	return float64(n) * TradeTreatyBonus
}

// ConstructionCap is how many buildings may be under construction at once.
func ConstructionCap(s *realm.State) int {
	return 1 + int(Bonus(s, catalog.EffectConstructionSlots))
}

// ResearchCap is how many technologies may be researched at once.
func ResearchCap(s *realm.State) int {
	return 1 + int(Bonus(s, catalog.EffectResearchSlots))
}

// ConstructionSpeed is the multiplier applied to construction progress.
func ConstructionSpeed(s *realm.State) float64 {
	return 1 + Bonus(s, catalog.EffectConstructionSpeed)/100
}

// ResearchSpeed is the multiplier applied to research progress.
func ResearchSpeed(s *realm.State) float64 {
	return 1 + Bonus(s, catalog.EffectResearchSpeed)/100
}
