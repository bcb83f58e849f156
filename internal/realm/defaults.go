package realm

import (
	"errors"
	"fmt"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/entropy"
)

// Starting values for a new game.
const (
	InitialGold         = 500
	InitialFood         = 100
	InitialOre          = 20
	InitialWeapons      = 5
	InitialArmor        = 5
	InitialPopulation   = 10
	InitialSatisfaction = 60
	InitialMorale       = 70
	DefaultTaxRate      = 0.15
)

// Speeds lists the valid game speed multipliers.
var Speeds = []int{1, 2, 5, 10, 20}

// ValidSpeed reports whether speed is one of Speeds.
func ValidSpeed(speed int) bool {
	for _, s := range Speeds {
		if s == speed {
			return true
		}
	}
	return false
}

// NewState builds the default starting state without rival nations.
// Migrations also use it as the source of back-filled defaults.
func NewState() State {
	farmers := InitialPopulation / 2
	soldiers := InitialPopulation / 5
	s := State{
		Day:    1,
		Speed:  1,
		Paused: true,
		Resources: Resources{
			Gold:    InitialGold,
			Food:    InitialFood,
			Ore:     InitialOre,
			Weapons: InitialWeapons,
			Armor:   InitialArmor,
		},
		Population: Population{
			Farmers:    farmers,
			Soldiers:   soldiers,
			Unemployed: InitialPopulation - farmers - soldiers,
		},
		Satisfaction:      InitialSatisfaction,
		TaxRate:           DefaultTaxRate,
		Military:          Military{Morale: InitialMorale, EquipmentRate: 100},
		Buildings:         []Building{},
		ConstructionQueue: []Order{},
		ResearchQueue:     []Order{},
		Specialists:       []Specialist{},
		Heroes:            []Hero{},
		ActiveEffects:     []ActiveEffect{},
		Nations:           []Nation{},
		PendingEvents:     []string{},
	}
	s.Population.Recount()
	s.SyncMilitary()
	s.Technologies = make([]Technology, len(catalog.Technologies))
	for i, t := range catalog.Technologies {
		s.Technologies[i] = Technology{ID: t.ID}
	}
	s.AddLog(CategoryImportant, PriorityHigh, "A new nation rises from humble beginnings.")
	return s
}

// SeedNations draws catalog.RivalCount rivals from the template roster.
func (s *State) SeedNations(src entropy.Source) {
	templates := append([]catalog.NationTemplate(nil), catalog.NationTemplates...)
	entropy.Shuffle(src, len(templates), func(i, j int) {
		templates[i], templates[j] = templates[j], templates[i]
	})
	s.Nations = make([]Nation, 0, catalog.RivalCount)
	for i, t := range templates[:catalog.RivalCount] {
		s.Nations = append(s.Nations, NewNation(i+1, t))
	}
}

// ApplyUpgrades grants the starting bonuses of purchased prestige upgrades.
// Unknown IDs are skipped.
func (s *State) ApplyUpgrades(ids []string) {
	for _, id := range ids {
		u, ok := catalog.UpgradeByID(id)
		if !ok {
			continue
		}
		s.Resources.Gold += u.Gold
		s.Resources.Food += u.Food
		if u.Soldiers > 0 {
			s.SetSoldiers(s.Population.Soldiers + u.Soldiers)
		}
	}
}

// Validate checks every structural invariant of the snapshot.
func (s *State) Validate() error {
	var errs []error
	if s.Population.Total != s.Population.Sum() {
		errs = append(errs, fmt.Errorf("population total %d != bucket sum %d", s.Population.Total, s.Population.Sum()))
	}
	for _, j := range []Job{Farmers, Miners, Craftsmen, Soldiers, Unemployed} {
		if s.Population.Count(j) < 0 {
			errs = append(errs, fmt.Errorf("negative %s", j))
		}
	}
	if s.Military.TotalSoldiers != s.Population.Soldiers {
		errs = append(errs, fmt.Errorf("military %d != population soldiers %d", s.Military.TotalSoldiers, s.Population.Soldiers))
	}
	if s.Military.Assigned() > s.Military.TotalSoldiers {
		errs = append(errs, errors.New("unit types exceed total soldiers"))
	}
	r := s.Resources
	if r.Food < 0 || r.Ore < 0 || r.Mana < 0 || r.Weapons < 0 || r.Armor < 0 {
		errs = append(errs, fmt.Errorf("negative stockpile: %+v", r))
	}
	if s.Satisfaction < 0 || s.Satisfaction > 100 {
		errs = append(errs, fmt.Errorf("satisfaction %d out of range", s.Satisfaction))
	}
	if s.Victory && s.GameOver {
		errs = append(errs, errors.New("victory and game over both set"))
	}
	if len(s.Log) > LogCapacity {
		errs = append(errs, fmt.Errorf("log holds %d entries", len(s.Log)))
	}
	return errors.Join(errs...)
}
