package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/economy"
	"github.com/talgya/axinode/internal/realm"
)

// CancelRefund is the share of an order's cost returned on cancellation.
const CancelRefund = 0.5

// advanceQueues progresses construction and research by sim seconds.
func (e *Engine) advanceQueues(sim float64) {
	s := &e.state

	var built []realm.Order
	s.ConstructionQueue, built = progress(s.ConstructionQueue, sim*economy.ConstructionSpeed(s))
	for _, o := range built {
		e.completeBuilding(o.ItemID)
	}

	var researched []realm.Order
	s.ResearchQueue, researched = progress(s.ResearchQueue, sim*economy.ResearchSpeed(s))
	for _, o := range researched {
		e.completeResearch(o.ItemID)
	}
}

// progress subtracts step from every order and splits off the finished ones.
func progress(queue []realm.Order, step float64) (remaining, done []realm.Order) {
	remaining = queue[:0]
	for _, o := range queue {
		o.Remaining -= step
		if o.Remaining <= 0 {
			done = append(done, o)
			continue
		}
		remaining = append(remaining, o)
	}
	return remaining, done
}

func (e *Engine) completeBuilding(id string) {
	s := &e.state
	s.Buildings = append(s.Buildings, realm.Building{ID: id, BuiltAt: s.DayNumber()})
	name := id
	if def, ok := catalog.Building(id); ok {
		name = def.Name
	}
	s.Logf(realm.CategoryDomestic, "Construction of %s is complete.", name)
}

// completeResearch flips the technology and applies its one-time effect.
func (e *Engine) completeResearch(id string) {
	s := &e.state
	for i := range s.Technologies {
		if s.Technologies[i].ID == id {
			s.Technologies[i].Researched = true
			s.Technologies[i].ResearchedAt = s.DayNumber()
		}
	}
	def, ok := catalog.Technology(id)
	if !ok {
		return
	}

	switch def.Effect.Type {
	case catalog.EffectConstructionSlots:
		s.AddLog(realm.CategoryTech, realm.PriorityHigh, fmt.Sprintf(
			"Research complete: %s. We can now build %d projects at once.", def.Name, economy.ConstructionCap(s)))
	case catalog.EffectResearchSlots:
		s.AddLog(realm.CategoryTech, realm.PriorityHigh, fmt.Sprintf(
			"Research complete: %s. Our scholars can now pursue %d studies at once.", def.Name, economy.ResearchCap(s)))
	case catalog.EffectUnlockBuilding:
		var names []string
		for _, b := range catalog.UnlockedBy(id) {
			names = append(names, b.Name)
		}
		s.AddLog(realm.CategoryTech, realm.PriorityHigh, fmt.Sprintf(
			"Research complete: %s. Unlocked: %s.", def.Name, strings.Join(names, ", ")))
	case catalog.EffectAscension:
		s.AddLog(realm.CategoryImportant, realm.PriorityCritical, fmt.Sprintf(
			"Research complete: %s. Our people stand at the threshold of a new age.", def.Name))
	default:
		s.Logf(realm.CategoryTech, "Research complete: %s.", def.Name)
	}
}

// StartConstruction queues a building and pays for it up front.
func (e *Engine) StartConstruction(id string) Result {
	return e.command(func(s *realm.State) Result {
		def, ok := catalog.Building(id)
		if !ok {
			return unknown("building", id, catalog.KindBuilding)
		}
		if limit := economy.ConstructionCap(s); len(s.ConstructionQueue) >= limit {
			return fail("The construction queue is at capacity (%d).", limit)
		}
		for _, p := range def.Prerequisites {
			if !s.Researched(p) && s.BuiltCount(p) == 0 {
				return fail("%s requires %s.", def.Name, displayName(p))
			}
		}
		if def.MaxCount > 0 && s.BuiltCount(id)+realm.QueuedCount(s.ConstructionQueue, id) >= def.MaxCount {
			return fail("%s is limited to %d.", def.Name, def.MaxCount)
		}
		if r, ok := pay(s, def.Cost); !ok {
			return r
		}
		s.ConstructionQueue = append(s.ConstructionQueue, realm.Order{
			ItemID:    id,
			StartDay:  s.DayNumber(),
			Remaining: def.BuildTime,
		})
		s.Logf(realm.CategoryDomestic, "Construction of %s has begun.", def.Name)
		return succeed("Construction of %s has begun.", def.Name)
	})
}

// StartResearch queues a technology and pays for it up front.
func (e *Engine) StartResearch(id string) Result {
	return e.command(func(s *realm.State) Result {
		def, ok := catalog.Technology(id)
		if !ok {
			return unknown("technology", id, catalog.KindTechnology)
		}
		if limit := economy.ResearchCap(s); len(s.ResearchQueue) >= limit {
			return fail("The research queue is at capacity (%d).", limit)
		}
		if s.Researched(id) {
			return fail("%s is already researched.", def.Name)
		}
		if realm.QueuedCount(s.ResearchQueue, id) > 0 {
			return fail("%s is already being researched.", def.Name)
		}
		for _, p := range def.Prerequisites {
			if !s.Researched(p) {
				return fail("%s requires %s.", def.Name, displayName(p))
			}
		}
		if r, ok := pay(s, def.Cost); !ok {
			return r
		}
		s.ResearchQueue = append(s.ResearchQueue, realm.Order{
			ItemID:    id,
			StartDay:  s.DayNumber(),
			Remaining: def.ResearchTime,
		})
		s.Logf(realm.CategoryTech, "Research into %s has begun.", def.Name)
		return succeed("Research into %s has begun.", def.Name)
	})
}

// CancelConstruction removes the order at index and refunds half its cost.
func (e *Engine) CancelConstruction(index int) Result {
	return e.command(func(s *realm.State) Result {
		if index < 0 || index >= len(s.ConstructionQueue) {
			return fail("No construction order at position %d.", index)
		}
		o := s.ConstructionQueue[index]
		s.ConstructionQueue = append(s.ConstructionQueue[:index], s.ConstructionQueue[index+1:]...)
		name := o.ItemID
		if def, ok := catalog.Building(o.ItemID); ok {
			name = def.Name
			refund(s, def.Cost)
		}
		s.Logf(realm.CategoryDomestic, "Construction of %s was cancelled.", name)
		return succeed("Construction of %s was cancelled.", name)
	})
}

// CancelResearch removes the order at index and refunds half its cost.
func (e *Engine) CancelResearch(index int) Result {
	return e.command(func(s *realm.State) Result {
		if index < 0 || index >= len(s.ResearchQueue) {
			return fail("No research order at position %d.", index)
		}
		o := s.ResearchQueue[index]
		s.ResearchQueue = append(s.ResearchQueue[:index], s.ResearchQueue[index+1:]...)
		name := o.ItemID
		if def, ok := catalog.Technology(o.ItemID); ok {
			name = def.Name
			refund(s, def.Cost)
		}
		s.Logf(realm.CategoryTech, "Research into %s was cancelled.", name)
		return succeed("Research into %s was cancelled.", name)
	})
}

// pay deducts cost if every component is affordable.
func pay(s *realm.State, c catalog.Cost) (Result, bool) {
	r := &s.Resources
	if r.Gold < c.Gold || r.Ore < c.Ore || r.Mana < c.Mana {
		return fail("Insufficient resources: need %.0f gold, %.0f ore, %.0f mana.", c.Gold, c.Ore, c.Mana), false
	}
	r.Gold -= c.Gold
	r.Ore -= c.Ore
	r.Mana -= c.Mana
	return Result{}, true
}

func refund(s *realm.State, c catalog.Cost) {
	s.Resources.Gold += math.Floor(c.Gold * CancelRefund)
	s.Resources.Ore += math.Floor(c.Ore * CancelRefund)
	s.Resources.Mana += math.Floor(c.Mana * CancelRefund)
}

// displayName resolves a prerequisite ID to a technology or building name.
func displayName(id string) string {
	if t, ok := catalog.Technology(id); ok {
		return t.Name
	}
	if b, ok := catalog.Building(id); ok {
		return b.Name
	}
	return id
}
