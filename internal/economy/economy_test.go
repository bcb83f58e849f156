package economy

import (
	"testing"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/realm"
)

func stateWith(p realm.Population) realm.State {
	s := realm.NewState()
	s.Population = p
	s.Population.Recount()
	s.SyncMilitary()
	return s
}

func TestFoodProductionBaseline(t *testing.T) {
	s := stateWith(realm.Population{Farmers: 10})
	if got := FoodProduction(&s); got != 10 {
		t.Errorf("10 farmers: got %d food, want 10", got)
	}

	s.Buildings = append(s.Buildings, realm.Building{ID: "farm_lv1"})
	def, _ := catalog.Building("farm_lv1")
	want := floor(10 * (1 + def.Effect.Value/100))
	if got := FoodProduction(&s); got != want {
		t.Errorf("with farm: got %d, want %d", got, want)
	}
}

func TestFoodConsumptionSoldiersEatMore(t *testing.T) {
	s := stateWith(realm.Population{Farmers: 40, Miners: 20, Soldiers: 10, Unemployed: 30})
	if s.Population.Total != 100 {
		t.Fatalf("total %d", s.Population.Total)
	}
	if got := FoodConsumption(&s); got != 105 {
		t.Errorf("got %d, want 105", got)
	}

	odd := stateWith(realm.Population{Soldiers: 1})
	if got := FoodConsumption(&odd); got != 2 {
		t.Errorf("one soldier eats ceil(1.5): got %d", got)
	}
}

func TestOreAndCrafting(t *testing.T) {
	s := stateWith(realm.Population{Miners: 5, Craftsmen: 10})
	if got := OreProduction(&s); got != 2 {
		t.Errorf("ore: got %d, want 2", got)
	}
	if got := WeaponProduction(&s); got != 3 {
		t.Errorf("weapons: got %d, want 3", got)
	}
	if got := ArmorProduction(&s); got != 2 {
		t.Errorf("armor: got %d, want 2", got)
	}
}

func TestTreatyBonus(t *testing.T) {
	s := stateWith(realm.Population{Farmers: 20})
	s.Nations = []realm.Nation{{ID: "nation_1", EconomicPower: 1000}, {ID: "nation_2", EconomicPower: 400, Defeated: true}}
	s.Nations[0].AddTreaty(realm.TreatyTrade, 12, 1)
	s.Nations[1].AddTreaty(realm.TreatyTrade, 12, 1)

	if got := TreatyBonus(&s); got != TradeTreatyBonus {
		t.Errorf("defeated partner counted: bonus %v", got)
	}
	if got := FoodProduction(&s); got != 21 {
		t.Errorf("food with treaty: got %d, want 21", got)
	}
	if got := TradeIncome(&s); got != 50 {
		t.Errorf("trade income: got %d, want 50", got)
	}
}

func TestTaxAndMaintenance(t *testing.T) {
	s := stateWith(realm.Population{Farmers: 50, Soldiers: 10, Unemployed: 40})
	s.Satisfaction = 50
	s.TaxRate = 0.2
	// 100 * 1.2 * 0.5 * 0.2
	if got := TaxIncome(&s); got != 12 {
		t.Errorf("tax: got %d, want 12", got)
	}
	if got := Maintenance(&s); got != 50 {
		t.Errorf("maintenance: got %d, want 50", got)
	}

	s.Specialists = []realm.Specialist{{ID: "s1", TemplateID: "olga"}}
	s.Heroes = []realm.Hero{{ID: "h1", TemplateID: "zeno"}}
	if got := Maintenance(&s); got != 50+40+300 {
		t.Errorf("maintenance with salaries: got %d", got)
	}
	if got := ManaConsumption(&s); got != 10 {
		t.Errorf("mana upkeep: got %d, want 10", got)
	}
	s.Military.MageWarriors = 3
	if got := ManaConsumption(&s); got != 13 {
		t.Errorf("mana upkeep with mage warriors: got %d, want 13", got)
	}
	s.Military.MageWarriors = 0

	l := Ledger(&s)
	if l.Net() != 12-390 {
		t.Errorf("ledger net: got %v", l.Net())
	}
}

func TestSatisfactionBrackets(t *testing.T) {
	tests := []struct {
		name       string
		food       float64
		tax        float64
		unemployed int
		want       int
	}{
		{"well fed, normal tax", 200, 0.15, 0, 75},
		{"a week of food", 70, 0.15, 0, 65},
		{"three days", 30, 0.15, 0, 55},
		{"hungry", 5, 0.15, 0, 20},
		{"heavy tax", 200, 0.22, 0, 65},
		{"crushing tax", 200, 0.30, 0, 55},
		{"light tax", 200, 0.05, 0, 80},
		{"some idle", 200, 0.15, 3, 70},
		{"many idle", 200, 0.15, 4, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stateWith(realm.Population{Farmers: 10 - tt.unemployed, Unemployed: tt.unemployed})
			s.Resources.Food = tt.food
			s.TaxRate = tt.tax
			if got := Satisfaction(&s); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEquipmentRate(t *testing.T) {
	s := stateWith(realm.Population{Soldiers: 10})
	s.Resources.Weapons = 8
	s.Resources.Armor = 5
	if got := EquipmentRate(&s); got != 50 {
		t.Errorf("got %d, want 50", got)
	}

	none := stateWith(realm.Population{Farmers: 3})
	if got := EquipmentRate(&none); got != 100 {
		t.Errorf("no soldiers: got %d, want 100", got)
	}
}

func TestQueueCaps(t *testing.T) {
	s := realm.NewState()
	if ConstructionCap(&s) != 1 || ResearchCap(&s) != 1 {
		t.Fatal("a new game should allow one order per queue")
	}
	for i := range s.Technologies {
		if s.Technologies[i].ID == "architecture" || s.Technologies[i].ID == "scholarship" {
			s.Technologies[i].Researched = true
		}
	}
	if ConstructionCap(&s) != 2 || ResearchCap(&s) != 2 {
		t.Errorf("caps after slot techs: %d/%d", ConstructionCap(&s), ResearchCap(&s))
	}
}
