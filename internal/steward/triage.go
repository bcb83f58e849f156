package steward

import (
	"math"

	"github.com/talgya/axinode/internal/economy"
	"github.com/talgya/axinode/internal/engine"
)

// Crisis levels, most severe first.
const (
	Critical = "CRITICAL"
	Warning  = "WARNING"
	Watch    = "WATCH"
	Healthy  = "HEALTHY"
)

// Health holds derived diagnostic signals computed from a Snapshot.
// Deterministic; the decision rules read only this and the state.
type Health struct {
	FoodBalance  int     // daily production minus consumption
	FoodDays     float64 // days of stock at the current deficit, +Inf when not in deficit
	MonthlyNet   float64 // tax + trade - maintenance
	Idle         int     // unemployed citizens
	Satisfaction int
	Threats      int // rivals at war or hostile enough to attack
	CrisisLevel  string
}

// Triage computes a Health from the snapshot's state.
func Triage(snap *Snapshot) *Health {
	s := &snap.State
	h := &Health{
		FoodBalance:  economy.FoodProduction(s) - economy.FoodConsumption(s),
		FoodDays:     math.Inf(1),
		Idle:         s.Population.Unemployed,
		Satisfaction: s.Satisfaction,
	}
	if h.FoodBalance < 0 {
		h.FoodDays = s.Resources.Food / float64(-h.FoodBalance)
	}
	l := economy.Ledger(s)
	h.MonthlyNet = l.Net()

	for _, n := range s.LivingNations() {
		if n.AtWar || n.Relation <= engine.HostileRelation {
			h.Threats++
		}
	}

	switch {
	case h.FoodDays < 5 || s.Resources.Gold < 0 || h.Satisfaction <= 10:
		h.CrisisLevel = Critical
	case h.FoodDays < 20 || h.Satisfaction <= 30 || s.Battle != nil:
		h.CrisisLevel = Warning
	case h.MonthlyNet < 0 || h.Threats > 0:
		h.CrisisLevel = Watch
	default:
		h.CrisisLevel = Healthy
	}
	return h
}
