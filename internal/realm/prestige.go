package realm

import (
	"fmt"
	"slices"

	"github.com/talgya/axinode/internal/catalog"
)

// Prestige is the cross-playthrough record.
type Prestige struct {
	Playtime   float64  `json:"playtime"` // simulated days across all games
	ClearCount int      `json:"clear_count"`
	Points     int      `json:"points"`
	Upgrades   []string `json:"upgrades"`
}

// Award returns the points a finished game earns: a victory is worth a
// base plus each conquest, a defeat a point per month survived.
func Award(s *State) int {
	switch {
	case s.Victory:
		return 100 + 20*s.Conquests
	case s.GameOver:
		return s.DayNumber() / 30
	}
	return 0
}

// Record folds a finished game into the prestige record.
func (p *Prestige) Record(s *State) int {
	pts := Award(s)
	p.Points += pts
	p.Playtime += s.Day
	if s.Victory {
		p.ClearCount++
	}
	return pts
}

// Buy spends points on an upgrade.
func (p *Prestige) Buy(id string) error {
	u, ok := catalog.UpgradeByID(id)
	if !ok {
		if hint := catalog.Suggest(catalog.KindUpgrade, id); hint != "" {
			return fmt.Errorf("unknown upgrade %q (did you mean %q?)", id, hint)
		}
		return fmt.Errorf("unknown upgrade %q", id)
	}
	if slices.Contains(p.Upgrades, id) {
		return fmt.Errorf("upgrade %q already owned", id)
	}
	if p.Points < u.Cost {
		return fmt.Errorf("upgrade %q costs %d points, have %d", id, u.Cost, p.Points)
	}
	p.Points -= u.Cost
	p.Upgrades = append(p.Upgrades, id)
	return nil
}
