package steward

import (
	"fmt"
	"math"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/economy"
	"github.com/talgya/axinode/internal/engine"
	"github.com/talgya/axinode/internal/realm"
)

// Actions a cycle can settle on.
const (
	ActionNone      = "none"
	ActionGameOver  = "game_over"
	ActionEvent     = "event"
	ActionBattle    = "battle"
	ActionAssign    = "assign"
	ActionTax       = "tax"
	ActionBuild     = "build"
	ActionResearch  = "research"
	ActionDiplomacy = "diplomacy"
)

// Tuning.
const (
	GoldReserve  = 150.0 // never spend below this
	TaxStep      = 0.05
	MinTaxRate   = 0.05
	RetreatRatio = 0.4 // retreat when our power falls below this share of theirs
	FoodComfort  = 5   // daily surplus the steward aims for
	OreLowWater  = 50.0
	ContentLevel = 60
	UnhappyLevel = 30
)

// Decision is the steward's chosen action for one cycle.
type Decision struct {
	Action    string   `json:"action"`
	Rationale string   `json:"rationale"`
	Command   *Command `json:"command,omitempty"`
}

// Command is one POST against the command API.
type Command struct {
	Path string `json:"path"`
	Body any    `json:"body,omitempty"`
}

func none(format string, args ...any) *Decision {
	return &Decision{Action: ActionNone, Rationale: fmt.Sprintf(format, args...)}
}

func act(action, path string, body any, format string, args ...any) *Decision {
	return &Decision{
		Action:    action,
		Rationale: fmt.Sprintf(format, args...),
		Command:   &Command{Path: path, Body: body},
	}
}

// Decide picks at most one command. Rules run in priority order and the
// first that applies wins.
func Decide(snap *Snapshot, h *Health, mem *CycleMemory) *Decision {
	s := &snap.State

	if snap.Status.Outcome != nil || s.Terminal() {
		return &Decision{Action: ActionGameOver, Rationale: "The game is over."}
	}
	if snap.Event != nil {
		return act(ActionEvent, "/api/v1/event/choose", map[string]int{"index": 0},
			"Answering %q with %q.", snap.Event.Title, firstChoice(snap.Event.Choices))
	}
	if d := decideBattle(s); d != nil {
		return d
	}
	if s.Paused {
		return none("The game is paused; leaving it to the ruler.")
	}

	if h.FoodBalance < 0 && h.FoodDays < 20 {
		if d := feed(s, h); d != nil {
			return d
		}
	}
	if h.Satisfaction <= UnhappyLevel && s.TaxRate > MinTaxRate {
		rate := math.Max(MinTaxRate, s.TaxRate-TaxStep)
		return act(ActionTax, "/api/v1/tax", map[string]float64{"rate": rate},
			"Satisfaction is %d; lowering taxes to %.2f.", h.Satisfaction, rate)
	}
	if h.MonthlyNet < 0 && h.Satisfaction >= ContentLevel && s.TaxRate < engine.MaxTaxRate &&
		!mem.RecentlyDid(ActionTax, 3) {
		rate := math.Min(engine.MaxTaxRate, s.TaxRate+TaxStep)
		return act(ActionTax, "/api/v1/tax", map[string]float64{"rate": rate},
			"Running a monthly deficit of %.0f; raising taxes to %.2f.", -h.MonthlyNet, rate)
	}
	if h.Idle > 0 {
		return employ(s, h)
	}
	if len(s.ConstructionQueue) < economy.ConstructionCap(s) {
		if b := pickBuilding(s, h); b != nil {
			return act(ActionBuild, "/api/v1/construction", map[string]string{"id": b.ID},
				"Building %s.", b.Name)
		}
	}
	if len(s.ResearchQueue) < economy.ResearchCap(s) {
		if t := pickTechnology(s); t != nil {
			return act(ActionResearch, "/api/v1/research", map[string]string{"id": t.ID},
				"Researching %s.", t.Name)
		}
	}
	if n := pickTradePartner(s); n != nil {
		return act(ActionDiplomacy, "/api/v1/nations/"+n.ID+"/trade", nil,
			"Proposing trade to %s (relation %.0f).", n.Name, n.Relation)
	}
	return none("Nothing needs attention (%s).", h.CrisisLevel)
}

func firstChoice(choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	return choices[0]
}

// decideBattle closes finished battles and retreats from hopeless attacks.
func decideBattle(s *realm.State) *Decision {
	b := s.Battle
	if b == nil {
		return nil
	}
	if b.Resolved {
		return act(ActionBattle, "/api/v1/battle/close", nil, "Closing the report on the battle with %s.", b.NationName)
	}
	if !b.Defensive && float64(b.Player.Power) < float64(b.Enemy.Power)*RetreatRatio {
		return act(ActionBattle, "/api/v1/battle/retreat", nil,
			"Our %d power cannot break %s's %d; retreating.", b.Player.Power, b.NationName, b.Enemy.Power)
	}
	return nil
}

// feed moves idle people onto the fields, or builds a farm.
func feed(s *realm.State, h *Health) *Decision {
	if h.Idle > 0 {
		need := int(math.Ceil(float64(FoodComfort-h.FoodBalance) / economy.FoodPerFarmer))
		n := s.Population.Farmers + min(h.Idle, need)
		return act(ActionAssign, "/api/v1/assign", map[string]any{"job": realm.Farmers, "count": n},
			"Food runs out in %.0f days; putting %d to farming.", h.FoodDays, n)
	}
	if len(s.ConstructionQueue) < economy.ConstructionCap(s) {
		for _, b := range buildable(s) {
			if b.Effect.Type == catalog.EffectFoodProduction {
				return act(ActionBuild, "/api/v1/construction", map[string]string{"id": b.ID},
					"Food runs out in %.0f days; building %s.", h.FoodDays, b.Name)
			}
		}
	}
	return nil
}

// employ puts the unemployed to work where output is weakest.
func employ(s *realm.State, h *Health) *Decision {
	job, count := realm.Craftsmen, s.Population.Craftsmen
	switch {
	case h.FoodBalance < FoodComfort:
		job, count = realm.Farmers, s.Population.Farmers
	case s.Resources.Ore < OreLowWater || s.Population.Miners <= s.Population.Craftsmen:
		job, count = realm.Miners, s.Population.Miners
	}
	n := count + h.Idle
	return act(ActionAssign, "/api/v1/assign", map[string]any{"job": job, "count": n},
		"%d citizens are idle; %s now number %d.", h.Idle, job, n)
}

// affordable leaves GoldReserve untouched.
func affordable(s *realm.State, c catalog.Cost) bool {
	r := s.Resources
	return r.Gold-c.Gold >= GoldReserve && r.Ore >= c.Ore && r.Mana >= c.Mana
}

func prerequisitesMet(s *realm.State, ids []string) bool {
	for _, p := range ids {
		if !s.Researched(p) && s.BuiltCount(p) == 0 {
			return false
		}
	}
	return true
}

// buildable lists affordable buildings in catalog order.
func buildable(s *realm.State) []*catalog.BuildingDef {
	var out []*catalog.BuildingDef
	for i := range catalog.Buildings {
		b := &catalog.Buildings[i]
		if !affordable(s, b.Cost) || !prerequisitesMet(s, b.Prerequisites) {
			continue
		}
		if b.MaxCount > 0 && s.BuiltCount(b.ID)+realm.QueuedCount(s.ConstructionQueue, b.ID) >= b.MaxCount {
			continue
		}
		out = append(out, b)
	}
	return out
}

// pickBuilding prefers food while the surplus is thin, otherwise the
// first building not yet owned, otherwise the first affordable one.
func pickBuilding(s *realm.State, h *Health) *catalog.BuildingDef {
	options := buildable(s)
	if len(options) == 0 {
		return nil
	}
	if h.FoodBalance < FoodComfort {
		for _, b := range options {
			if b.Effect.Type == catalog.EffectFoodProduction {
				return b
			}
		}
	}
	for _, b := range options {
		if s.BuiltCount(b.ID)+realm.QueuedCount(s.ConstructionQueue, b.ID) == 0 {
			return b
		}
	}
	return options[0]
}

// pickTechnology returns the cheapest available technology.
func pickTechnology(s *realm.State) *catalog.TechDef {
	var best *catalog.TechDef
	for i := range catalog.Technologies {
		t := &catalog.Technologies[i]
		if s.Researched(t.ID) || realm.QueuedCount(s.ResearchQueue, t.ID) > 0 {
			continue
		}
		if !affordable(s, t.Cost) {
			continue
		}
		met := true
		for _, p := range t.Prerequisites {
			if !s.Researched(p) {
				met = false
				break
			}
		}
		if met && (best == nil || t.Cost.Gold < best.Cost.Gold) {
			best = t
		}
	}
	return best
}

// pickTradePartner returns the friendliest rival without a trade treaty.
func pickTradePartner(s *realm.State) *realm.Nation {
	if s.Resources.Gold-engine.TradeCost < GoldReserve {
		return nil
	}
	var best *realm.Nation
	for _, n := range s.LivingNations() {
		if n.AtWar || n.Relation < 0 || n.HasTreaty(realm.TreatyTrade) {
			continue
		}
		if best == nil || n.Relation > best.Relation {
			best = n
		}
	}
	return best
}
