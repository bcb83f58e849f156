// Package engine provides the tick-driven nation simulation.
package engine

import (
	"log/slog"
	"math"

	"github.com/talgya/axinode/internal/economy"
)

// Time scale.
const (
	DayConversionFactor = 0.1 // days per real second at speed 1
	MaxElapsed          = 1.0 // seconds; larger frame gaps are clamped
	DaysPerMonth        = economy.DaysPerMonth
)

// Tick advances the simulation by elapsed real seconds. At most one daily
// and one monthly update fire per call.
func (e *Engine) Tick(elapsed float64) {
	defer e.notify()

	s := &e.state
	if math.IsNaN(elapsed) {
		elapsed = 0
	}
	elapsed = max(0, min(MaxElapsed, elapsed))
	if elapsed == 0 || s.Terminal() || s.Paused || s.EventPaused {
		return
	}

	prev := s.Day
	s.Day += elapsed * float64(s.Speed) * DayConversionFactor

	if math.Floor(s.Day) > math.Floor(prev) {
		monthly := math.Floor(s.Day/DaysPerMonth) > math.Floor(prev/DaysPerMonth)
		e.daily(monthly)
	}
	if s.Terminal() {
		return
	}

	sim := elapsed * float64(s.Speed)
	e.advanceQueues(sim)
	e.advanceBattle(sim)
}

// daily runs the boundary systems in their fixed order.
func (e *Engine) daily(monthly bool) {
	s := &e.state

	e.applyEconomy()
	if monthly {
		e.monthly()
	}
	e.runNations()
	e.dispatchEvents()
	e.evaluate()

	slog.Debug("daily report",
		"day", s.DayNumber(),
		"gold", int(s.Resources.Gold),
		"food", int(s.Resources.Food),
		"population", s.Population.Total,
		"soldiers", s.Military.TotalSoldiers,
		"satisfaction", s.Satisfaction,
		"battle", s.Battle != nil,
	)
}
