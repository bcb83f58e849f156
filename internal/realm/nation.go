package realm

import (
	"fmt"

	"github.com/talgya/axinode/internal/catalog"
)

// TreatyType is a kind of agreement with a rival nation.
type TreatyType string

const (
	TreatyTrade         TreatyType = "trade"
	TreatyNonAggression TreatyType = "nonAggression"
	TreatyAlliance      TreatyType = "alliance"
)

// ParseTreaty validates a treaty type name.
func ParseTreaty(name string) (TreatyType, error) {
	switch t := TreatyType(name); t {
	case TreatyTrade, TreatyNonAggression, TreatyAlliance:
		return t, nil
	}
	return "", fmt.Errorf("unknown treaty type %q", name)
}

// Treaty is a timed agreement, counted down monthly.
type Treaty struct {
	Type      TreatyType `json:"type"`
	Duration  int        `json:"duration"` // remaining months
	StartedAt int        `json:"started_at"`
}

// Nation is an AI-controlled rival.
type Nation struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Personality     catalog.Personality `json:"personality"`
	Population      int                 `json:"population"`
	MilitaryPower   int                 `json:"military_power"`
	EconomicPower   int                 `json:"economic_power"`
	Relation        float64             `json:"relation"` // -100..100
	Treaties        []Treaty            `json:"treaties"`
	AtWar           bool                `json:"at_war"`
	Aggressiveness  int                 `json:"aggressiveness"`
	ExpansionDesire int                 `json:"expansion_desire"`
	LastActionDay   int                 `json:"last_action_day"`
	Defeated        bool                `json:"defeated"`
}

// NewNation creates the nth rival from a template.
func NewNation(n int, t catalog.NationTemplate) Nation {
	return Nation{
		ID:              fmt.Sprintf("nation_%d", n),
		Name:            t.Name,
		Personality:     t.Personality,
		Population:      t.Population,
		MilitaryPower:   t.MilitaryPower,
		EconomicPower:   t.Population / 2,
		Aggressiveness:  t.Aggressiveness,
		ExpansionDesire: t.ExpansionDesire,
	}
}

// HasTreaty reports whether an agreement of type t is active.
func (n *Nation) HasTreaty(t TreatyType) bool {
	for _, tr := range n.Treaties {
		if tr.Type == t {
			return true
		}
	}
	return false
}

// AddTreaty signs or renews an agreement.
func (n *Nation) AddTreaty(t TreatyType, months, day int) {
	n.DropTreaty(t)
	n.Treaties = append(n.Treaties, Treaty{Type: t, Duration: months, StartedAt: day})
}

// DropTreaty cancels an agreement if present.
func (n *Nation) DropTreaty(t TreatyType) {
	kept := n.Treaties[:0]
	for _, tr := range n.Treaties {
		if tr.Type != t {
			kept = append(kept, tr)
		}
	}
	n.Treaties = kept
}

// Pacted reports whether a non-aggression pact or alliance binds the nation.
func (n *Nation) Pacted() bool {
	return n.HasTreaty(TreatyNonAggression) || n.HasTreaty(TreatyAlliance)
}

// AdjustRelation moves the relation by delta within -100..100.
func (n *Nation) AdjustRelation(delta float64) {
	n.Relation = max(-100, min(100, n.Relation+delta))
}

// DeclareWar puts the nation at war with the player.
func (n *Nation) DeclareWar() {
	n.AtWar = true
	n.Relation = -100
	n.Treaties = nil
}
