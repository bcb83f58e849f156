// Rival nations: daily policy decisions, war declarations and the
// player's diplomatic commands.
package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/combat"
	"github.com/talgya/axinode/internal/entropy"
	"github.com/talgya/axinode/internal/events"
	"github.com/talgya/axinode/internal/realm"
)

// Rival policy tuning.
const (
	GracePeriodDays    = 30
	ActionCooldownDays = 15

	ReattackChance      = 0.10
	HostileRelation     = -60
	HostileWarChance    = 0.15
	AggressiveThreshold = 70
	AggressionRatio     = 1.5
	UnprovokedWarChance = 0.05
	DiplomacyChance     = 1.0 / 30

	TributeRatio      = 2.0
	TributeRelation   = -20
	TributeShare      = 0.2
	MinTribute        = 50
	RefusalWarChance  = 0.5
	GoodwillRelation  = -10
	RelationDecay     = 0.2
	TradeTreatyMonths = 12
)

// Player diplomacy costs and thresholds.
const (
	TradeCost              = 200
	HostileTradeMultiplier = 1.5
	TradeRefusalRelation   = -20
	PactCost               = 300
	PactRelation           = 20
	PactMonths             = 12
	AllianceCost           = 500
	AllianceRelation       = 60
	AllianceMonths         = 24
)

// runNations lets each rival act. Relations drift toward zero every day;
// decisions wait for the grace period and pause during battles.
func (e *Engine) runNations() {
	s := &e.state
	for i := range s.Nations {
		n := &s.Nations[i]
		switch {
		case n.Relation > 0:
			n.Relation = max(0, n.Relation-RelationDecay)
		case n.Relation < 0:
			n.Relation = min(0, n.Relation+RelationDecay)
		}
	}

	if s.Battle != nil || s.Day < GracePeriodDays {
		return
	}
	day := s.DayNumber()
	for i := range s.Nations {
		n := &s.Nations[i]
		if n.Defeated || day-n.LastActionDay < ActionCooldownDays {
			continue
		}
		if s.Battle != nil || s.Terminal() {
			return
		}
		e.decide(n)
	}
}

// decide runs one nation's decision ladder.
func (e *Engine) decide(n *realm.Nation) {
	s := &e.state
	strength := e.playerStrength(combat.Defense, n.ID)

	if n.AtWar {
		if entropy.Chance(e.rng, ReattackChance) {
			n.LastActionDay = s.DayNumber()
			s.AddLog(realm.CategoryMilitary, realm.PriorityHigh, fmt.Sprintf("%s renews its assault.", n.Name))
			e.startBattle(n, true)
		}
		return
	}

	if !n.Pacted() {
		if n.Relation <= HostileRelation && entropy.Chance(e.rng, HostileWarChance) {
			e.declareWar(n)
			return
		}
		if n.Aggressiveness >= AggressiveThreshold &&
			float64(n.MilitaryPower) > AggressionRatio*float64(strength) &&
			entropy.Chance(e.rng, UnprovokedWarChance) {
			e.declareWar(n)
			return
		}
	}

	if entropy.Chance(e.rng, DiplomacyChance) {
		e.diplomaticAction(n, strength)
	}
}

// declareWar puts n at war and forces a defensive battle if none is active.
func (e *Engine) declareWar(n *realm.Nation) {
	s := &e.state
	n.DeclareWar()
	n.LastActionDay = s.DayNumber()
	s.AddLog(realm.CategoryDiplomatic, realm.PriorityCritical, fmt.Sprintf("%s has declared war on us!", n.Name))
	slog.Info("war declared", "nation", n.Name, "day", s.DayNumber(), "military_power", n.MilitaryPower)
	e.startBattle(n, true)
}

// diplomaticAction picks tribute, trade or goodwill by relation and
// personality. Prompts are skipped while another event awaits a choice.
func (e *Engine) diplomaticAction(n *realm.Nation, strength int) {
	s := &e.state
	switch {
	case e.pending == nil && float64(n.MilitaryPower) > TributeRatio*float64(strength) && n.Relation < TributeRelation:
		e.present(e.tributeDemand(n))
	case e.pending == nil && (n.Relation >= 0 || n.Personality == catalog.Commercial) && !n.HasTreaty(realm.TreatyTrade):
		e.present(e.tradeProposal(n))
	case n.Relation >= GoodwillRelation:
		n.AdjustRelation(5)
		s.Logf(realm.CategoryDiplomatic, "%s sends a letter of goodwill.", n.Name)
	default:
		return
	}
	n.LastActionDay = s.DayNumber()
}

func (e *Engine) tributeDemand(n *realm.Nation) *events.Event {
	id, name := n.ID, n.Name
	amount := max(MinTribute, math.Floor(e.state.Resources.Gold*TributeShare))
	return &events.Event{
		ID:          "tribute_demand",
		Title:       fmt.Sprintf("%s demands tribute", name),
		Description: fmt.Sprintf("Envoys from %s demand %.0f gold, or else.", name, amount),
		Category:    realm.CategoryDiplomatic,
		Choices: []events.Choice{
			{
				Label: fmt.Sprintf("Pay %.0f gold", amount),
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold -= amount
					if nat := s.Nation(id); nat != nil {
						nat.AdjustRelation(10)
					}
					return fmt.Sprintf("We paid %.0f gold in tribute to %s.", amount, name)
				},
			},
			{
				Label: "Refuse",
				Apply: func(s *realm.State, rng entropy.Source) string {
					nat := s.Nation(id)
					if nat == nil || nat.Defeated {
						return ""
					}
					nat.AdjustRelation(-20)
					if entropy.Chance(rng, RefusalWarChance) {
						e.declareWar(nat)
						return fmt.Sprintf("Our refusal enraged %s.", name)
					}
					return fmt.Sprintf("We refused the demands of %s.", name)
				},
			},
		},
	}
}

func (e *Engine) tradeProposal(n *realm.Nation) *events.Event {
	id, name := n.ID, n.Name
	commercial := n.Personality == catalog.Commercial
	return &events.Event{
		ID:          "trade_proposal",
		Title:       fmt.Sprintf("%s proposes trade", name),
		Description: fmt.Sprintf("Merchants of %s propose a trade agreement for %d months.", name, TradeTreatyMonths),
		Category:    realm.CategoryDiplomatic,
		Choices: []events.Choice{
			{
				Label: "Accept",
				Apply: func(s *realm.State, rng entropy.Source) string {
					nat := s.Nation(id)
					if nat == nil || nat.Defeated {
						return ""
					}
					nat.AddTreaty(realm.TreatyTrade, TradeTreatyMonths, s.DayNumber())
					nat.AdjustRelation(10)
					if commercial {
						gift := math.Floor(50 + rng.Float64()*100)
						s.Resources.Gold += gift
						return fmt.Sprintf("We signed a trade agreement with %s, who sent %.0f gold as a gift.", name, gift)
					}
					return fmt.Sprintf("We signed a trade agreement with %s.", name)
				},
			},
			{
				Label: "Decline",
				Apply: func(s *realm.State, _ entropy.Source) string {
					if nat := s.Nation(id); nat != nil {
						nat.AdjustRelation(-5)
					}
					return fmt.Sprintf("We declined the offer from %s.", name)
				},
			},
		},
	}
}

// ProposeTradeAgreement offers a trade treaty to a rival.
func (e *Engine) ProposeTradeAgreement(id string) Result {
	return e.command(func(s *realm.State) Result {
		return e.proposeTrade(s, id)
	})
}

func (e *Engine) proposeTrade(s *realm.State, id string) Result {
	n, r := e.targetNation(id)
	if n == nil {
		return r
	}
	if n.AtWar {
		return fail("We are at war with %s.", n.Name)
	}
	if n.HasTreaty(realm.TreatyTrade) {
		return fail("We already trade with %s.", n.Name)
	}
	if n.Relation < TradeRefusalRelation {
		return fail("%s refuses to negotiate.", n.Name)
	}
	cost := float64(TradeCost)
	if n.Relation < 0 {
		cost *= HostileTradeMultiplier
	}
	if s.Resources.Gold < cost {
		return fail("A trade mission costs %.0f gold.", cost)
	}
	s.Resources.Gold -= cost
	n.AddTreaty(realm.TreatyTrade, TradeTreatyMonths, s.DayNumber())
	n.AdjustRelation(10)
	s.Logf(realm.CategoryDiplomatic, "A trade agreement with %s was signed.", n.Name)
	return succeed("Trade agreement signed with %s.", n.Name)
}

// SignTreaty signs a trade agreement, non-aggression pact or alliance.
func (e *Engine) SignTreaty(id, kind string) Result {
	return e.command(func(s *realm.State) Result {
		t, err := realm.ParseTreaty(kind)
		if err != nil {
			return fail("%v", err)
		}
		if t == realm.TreatyTrade {
			return e.proposeTrade(s, id)
		}
		n, r := e.targetNation(id)
		if n == nil {
			return r
		}
		if n.AtWar {
			return fail("We are at war with %s.", n.Name)
		}
		if n.HasTreaty(t) {
			return fail("We already have a %s treaty with %s.", t, n.Name)
		}

		need, cost, months := PactRelation, PactCost, PactMonths
		if t == realm.TreatyAlliance {
			need, cost, months = AllianceRelation, AllianceCost, AllianceMonths
		}
		if n.Relation < float64(need) {
			return fail("%s will not sign without a relation of %d.", n.Name, need)
		}
		if s.Resources.Gold < float64(cost) {
			return fail("The treaty costs %d gold.", cost)
		}
		s.Resources.Gold -= float64(cost)
		if t == realm.TreatyAlliance {
			n.DropTreaty(realm.TreatyNonAggression)
		}
		n.AddTreaty(t, months, s.DayNumber())
		s.AddLog(realm.CategoryDiplomatic, realm.PriorityHigh, fmt.Sprintf("We signed a %s treaty with %s.", t, n.Name))
		return succeed("%s treaty signed with %s.", t, n.Name)
	})
}

// Espionage operations.
const (
	SpyScout    = "scout"
	SpySabotage = "sabotage"
	SpyIncite   = "incite"
)

type operation struct {
	cost    float64
	success float64
}

var operations = map[string]operation{
	SpyScout:    {cost: 100, success: 1},
	SpySabotage: {cost: 300, success: 0.6},
	SpyIncite:   {cost: 500, success: 0.5},
}

// ExecuteEspionage runs a covert operation against a rival. A caught
// operation still spends its cost and reports failure.
func (e *Engine) ExecuteEspionage(kind, id string) Result {
	return e.command(func(s *realm.State) Result {
		op, ok := operations[kind]
		if !ok {
			return fail("Unknown operation %q.", kind)
		}
		n, r := e.targetNation(id)
		if n == nil {
			return r
		}
		if s.Resources.Gold < op.cost {
			return fail("The operation costs %.0f gold.", op.cost)
		}
		s.Resources.Gold -= op.cost

		if !entropy.Chance(e.rng, op.success) {
			n.AdjustRelation(-20)
			s.AdjustReputation(-5)
			s.AddLog(realm.CategoryDiplomatic, realm.PriorityHigh, fmt.Sprintf("Our agents were caught in %s.", n.Name))
			return fail("Our agents were caught in %s.", n.Name)
		}

		switch kind {
		case SpyScout:
			s.Logf(realm.CategoryDiplomatic, "Scouts report %s: %d people, %d troops, economy %d.",
				n.Name, n.Population, n.MilitaryPower, n.EconomicPower)
		case SpySabotage:
			lost := int(math.Floor(float64(n.MilitaryPower) * 0.10))
			n.MilitaryPower -= lost
			s.Logf(realm.CategoryDiplomatic, "Saboteurs crippled %d of %s's troops.", lost, n.Name)
		case SpyIncite:
			lost := int(math.Floor(float64(n.EconomicPower) * 0.15))
			n.EconomicPower -= lost
			s.Logf(realm.CategoryDiplomatic, "Unrest spreads through %s.", n.Name)
		}
		return succeed("The %s operation against %s succeeded.", kind, n.Name)
	})
}
