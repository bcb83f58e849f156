// Population dynamics: monthly growth and decline, treaty expiry and
// rival growth.
package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/axinode/internal/economy"
	"github.com/talgya/axinode/internal/realm"
)

// Monthly population thresholds and rates.
const (
	GrowthThreshold  = 70
	DeclineThreshold = 30
	GrowthRate       = 0.02
	DeclineRate      = 0.01
	NationGrowthRate = 0.01
)

// monthly runs on every month boundary, after the daily economy.
func (e *Engine) monthly() {
	s := &e.state

	s.Satisfaction = economy.Satisfaction(s)
	s.Ledger = economy.Ledger(s)

	switch {
	case s.Satisfaction >= GrowthThreshold:
		n := int(math.Ceil(float64(s.Population.Total) * GrowthRate))
		if n > 0 {
			s.Population.Grow(n)
			s.Logf(realm.CategoryDomestic, "%d settlers arrived, drawn by our prosperity.", n)
		}
	case s.Satisfaction <= DeclineThreshold:
		n := int(math.Ceil(float64(s.Population.Total) * DeclineRate))
		if lost := s.Population.Remove(n, realm.DeclineOrder); lost > 0 {
			s.AddLog(realm.CategoryImportant, realm.PriorityHigh, pluralLeave(lost))
		}
	}
	s.SyncMilitary()

	e.expireTreaties()
	e.growNations()

	slog.Info("monthly report",
		"day", s.DayNumber(),
		"population", s.Population.Total,
		"satisfaction", s.Satisfaction,
		"tax", s.Ledger.Tax,
		"trade", s.Ledger.Trade,
		"maintenance", s.Ledger.Maintenance,
		"gold", int(s.Resources.Gold),
	)
}

func pluralLeave(n int) string {
	if n == 1 {
		return "One discontented citizen left the country."
	}
	return fmt.Sprintf("%d discontented citizens left the country.", n)
}

// expireTreaties counts treaty durations down by a month.
func (e *Engine) expireTreaties() {
	s := &e.state
	for i := range s.Nations {
		n := &s.Nations[i]
		kept := n.Treaties[:0]
		for _, t := range n.Treaties {
			t.Duration--
			if t.Duration <= 0 {
				s.Logf(realm.CategoryDiplomatic, "Our %s treaty with %s has expired.", t.Type, n.Name)
				continue
			}
			kept = append(kept, t)
		}
		n.Treaties = kept
	}
}

// growNations grows every living rival by a small fixed rate.
func (e *Engine) growNations() {
	for _, n := range e.state.LivingNations() {
		n.Population += grow(n.Population)
		n.MilitaryPower += grow(n.MilitaryPower)
		n.EconomicPower += grow(n.EconomicPower)
	}
}

func grow(x int) int {
	return max(1, int(math.Floor(float64(x)*NationGrowthRate)))
}
