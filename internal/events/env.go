package events

import "github.com/talgya/axinode/internal/realm"

// Env is the view of the state that event conditions are evaluated
// against. Fields and methods are callable from expr expressions, e.g.
// `Gold >= 200 && !Researched("scholarship")`.
type Env struct {
	Day          int
	Gold         float64
	Food         float64
	Ore          float64
	Mana         float64
	Population   int
	Farmers      int
	Miners       int
	Craftsmen    int
	Soldiers     int
	Unemployed   int
	Satisfaction int
	Morale       int
	Reputation   int
	AtWar        bool
	// HeroesAvailable counts hero templates not yet in our service.
	HeroesAvailable int

	researched map[string]bool
	built      map[string]int
}

// NewEnv snapshots s for condition evaluation.
func NewEnv(s *realm.State) Env {
	env := Env{
		Day:             s.DayNumber(),
		Gold:            s.Resources.Gold,
		Food:            s.Resources.Food,
		Ore:             s.Resources.Ore,
		Mana:            s.Resources.Mana,
		Population:      s.Population.Total,
		Farmers:         s.Population.Farmers,
		Miners:          s.Population.Miners,
		Craftsmen:       s.Population.Craftsmen,
		Soldiers:        s.Population.Soldiers,
		Unemployed:      s.Population.Unemployed,
		Satisfaction:    s.Satisfaction,
		Morale:          s.Military.Morale,
		Reputation:      s.Reputation,
		HeroesAvailable: len(s.AvailableHeroes()),
		researched:      make(map[string]bool),
		built:           make(map[string]int),
	}
	for _, n := range s.Nations {
		if n.AtWar && !n.Defeated {
			env.AtWar = true
		}
	}
	for _, t := range s.Technologies {
		if t.Researched {
			env.researched[t.ID] = true
		}
	}
	for _, b := range s.Buildings {
		env.built[b.ID]++
	}
	return env
}

// Researched reports whether technology id is complete.
func (e Env) Researched(id string) bool {
	return e.researched[id]
}

// Built reports whether at least one building id is complete.
func (e Env) Built(id string) bool {
	return e.built[id] > 0
}
