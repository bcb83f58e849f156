// Package economy computes production, consumption, taxation, maintenance
// and satisfaction. Every function is a pure function of realm.State.
package economy

import (
	"math"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/realm"
)

// Base rates per worker per day.
const (
	FoodPerFarmer       = 1.0
	OrePerMiner         = 0.5
	WeaponsPerCraftsman = 0.3
	ArmorPerCraftsman   = 0.2

	FoodPerCivilian = 1.0
	FoodPerSoldier  = 1.5

	ManaPerMageWarrior = 1.0

	TaxPerCapita     = 1.2 // monthly gold per head at 100% rate
	UpkeepPerSoldier = 5.0 // monthly gold

	TradeShare       = 0.05 // of a partner's economic power, monthly
	TradeTreatyBonus = 5.0  // production percent per trade treaty

	DaysPerMonth = 30
)

// Production formulas.

// FoodProduction returns daily food output.
func FoodProduction(s *realm.State) int {
	base := float64(s.Population.Farmers) * FoodPerFarmer
	bonus := Bonus(s, catalog.EffectFoodProduction, catalog.EffectFarmEfficiency, catalog.EffectProductionBonus) +
		TreatyBonus(s)
	return applyBonus(base, bonus)
}

// OreProduction returns daily ore output.
func OreProduction(s *realm.State) int {
	base := float64(s.Population.Miners) * OrePerMiner
	bonus := Bonus(s, catalog.EffectOreProduction, catalog.EffectMiningEfficiency, catalog.EffectProductionBonus) +
		TreatyBonus(s)
	return applyBonus(base, bonus)
}

// WeaponProduction returns daily weapon output.
func WeaponProduction(s *realm.State) int {
	base := float64(s.Population.Craftsmen) * WeaponsPerCraftsman
	bonus := Bonus(s, catalog.EffectWeaponProduction, catalog.EffectProductionBonus)
	return applyBonus(base, bonus)
}

// ArmorProduction returns daily armor output.
func ArmorProduction(s *realm.State) int {
	base := float64(s.Population.Craftsmen) * ArmorPerCraftsman
	bonus := Bonus(s, catalog.EffectArmorProduction, catalog.EffectProductionBonus)
	return applyBonus(base, bonus)
}

// ManaProduction returns daily mana generation from towers and heroes.
// Mana has no workers; the flat generation is the base.
func ManaProduction(s *realm.State) int {
	return floor(Bonus(s, catalog.EffectManaGeneration))
}

// ManaConsumption returns daily mana upkeep of heroes and mage warriors.
func ManaConsumption(s *realm.State) int {
	total := float64(s.Military.MageWarriors) * ManaPerMageWarrior
	for _, h := range s.Heroes {
		if t, ok := catalog.Hero(h.TemplateID); ok {
			total += t.ManaCost
		}
	}
	return floor(total)
}

// FoodConsumption returns daily food eaten; soldiers eat more.
func FoodConsumption(s *realm.State) int {
	civilians := float64(s.Population.Total - s.Military.TotalSoldiers)
	soldiers := float64(s.Military.TotalSoldiers)
	return int(math.Ceil(civilians*FoodPerCivilian + soldiers*FoodPerSoldier - 1e-9))
}

// TaxIncome returns monthly tax revenue.
func TaxIncome(s *realm.State) int {
	bonus := Bonus(s, catalog.EffectTaxBonus)
	v := float64(s.Population.Total) * TaxPerCapita * (float64(s.Satisfaction) / 100) * s.TaxRate * (1 + bonus/100)
	return floor(v)
}

// TradeIncome returns monthly revenue from trade treaties.
func TradeIncome(s *realm.State) int {
	partners := 0.0
	for _, n := range s.Nations {
		if !n.Defeated && n.HasTreaty(realm.TreatyTrade) {
			partners += float64(n.EconomicPower) * TradeShare
		}
	}
	return floor(partners * (1 + Bonus(s, catalog.EffectTradeBonus)/100))
}

// Maintenance returns monthly army upkeep plus salaries.
func Maintenance(s *realm.State) int {
	total := float64(s.Military.TotalSoldiers) * UpkeepPerSoldier
	for _, sp := range s.Specialists {
		if t, ok := catalog.Specialist(sp.TemplateID); ok {
			total += t.Salary
		}
	}
	for _, h := range s.Heroes {
		if t, ok := catalog.Hero(h.TemplateID); ok {
			total += t.Salary
		}
	}
	return floor(total)
}

// Satisfaction scores public mood from food reserves, tax burden and
// unemployment.
func Satisfaction(s *realm.State) int {
	score := 50

	foodDays := s.Resources.Food / float64(max(1, FoodConsumption(s)))
	switch {
	case foodDays >= 14:
		score += 25
	case foodDays >= 7:
		score += 15
	case foodDays >= 3:
		score += 5
	case foodDays < 1:
		score -= 30
	}

	if s.TaxRate > 0.20 {
		score -= 10
	}
	if s.TaxRate > 0.25 {
		score -= 10
	}
	if s.TaxRate < 0.10 {
		score += 5
	}

	if s.Population.Total > 0 {
		rate := float64(s.Population.Unemployed) / float64(s.Population.Total)
		switch {
		case rate > 0.30:
			score -= 15
		case rate > 0.20:
			score -= 5
		}
	}

	return max(0, min(100, score))
}

// EquipmentRate returns the share of soldiers fully armed and armored.
func EquipmentRate(s *realm.State) int {
	soldiers := s.Military.TotalSoldiers
	if soldiers == 0 {
		return 100
	}
	equipped := min(float64(soldiers), s.Resources.Weapons, s.Resources.Armor)
	return floor(equipped / float64(soldiers) * 100)
}

// DailyCashFlow spreads the monthly figures over each day.
func DailyCashFlow(s *realm.State) float64 {
	return float64(TaxIncome(s)+TradeIncome(s)-Maintenance(s)) / DaysPerMonth
}

// Ledger captures the monthly figures for display.
func Ledger(s *realm.State) realm.Ledger {
	return realm.Ledger{
		Tax:         float64(TaxIncome(s)),
		Trade:       float64(TradeIncome(s)),
		Maintenance: float64(Maintenance(s)),
	}
}

func applyBonus(base, bonusPercent float64) int {
	return floor(base * (1 + bonusPercent/100))
}

// floor tolerates float noise like 9.999999999999998.
func floor(x float64) int {
	return int(math.Floor(x + 1e-9))
}
