package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/realm"
)

// MaxTaxRate bounds SetTaxRate.
const MaxTaxRate = 0.5

// Result is the outcome of a player command. Validation failures are
// reported here, never as Go errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func succeed(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// unknown reports an unrecognized ID with the closest known one.
func unknown(what, id string, kind catalog.Kind) Result {
	if hint := catalog.Suggest(kind, id); hint != "" {
		return fail("Unknown %s %q. Did you mean %q?", what, id, hint)
	}
	return fail("Unknown %s %q.", what, id)
}

// command runs fn against the state unless the game has ended, then
// restores the resource floors and notifies subscribers.
func (e *Engine) command(fn func(s *realm.State) Result) Result {
	s := &e.state
	if s.Terminal() {
		return fail("The game has ended.")
	}
	r := fn(s)
	s.Resources.Clamp()
	e.notify()
	return r
}

// TogglePause pauses or resumes the simulation clock.
func (e *Engine) TogglePause() Result {
	return e.command(func(s *realm.State) Result {
		s.Paused = !s.Paused
		if s.Paused {
			return succeed("Paused.")
		}
		return succeed("Resumed.")
	})
}

// SetSpeed changes the game speed multiplier.
func (e *Engine) SetSpeed(speed int) Result {
	return e.command(func(s *realm.State) Result {
		if !realm.ValidSpeed(speed) {
			return fail("Speed must be one of %v.", realm.Speeds)
		}
		s.Speed = speed
		return succeed("Speed set to %dx.", speed)
	})
}

// SetTaxRate changes the tax rate, a fraction in [0, MaxTaxRate].
func (e *Engine) SetTaxRate(rate float64) Result {
	return e.command(func(s *realm.State) Result {
		if math.IsNaN(rate) || rate < 0 || rate > MaxTaxRate {
			return fail("Tax rate must be between 0 and %.0f%%.", MaxTaxRate*100)
		}
		s.TaxRate = rate
		s.Logf(realm.CategoryDomestic, "The tax rate is now %.0f%%.", rate*100)
		return succeed("Tax rate set to %.0f%%.", rate*100)
	})
}

// AssignPopulation sets a job's headcount, moving the difference to or
// from the unemployed.
func (e *Engine) AssignPopulation(job string, count int) Result {
	return e.command(func(s *realm.State) Result {
		j, err := realm.ParseJob(job)
		if err != nil {
			return fail("%v", err)
		}
		if j == realm.Soldiers && count != s.Population.Soldiers && inBattle(s) {
			return fail("Soldiers cannot leave or join the ranks while a battle is being fought.")
		}
		if err := s.Population.Reassign(j, count); err != nil {
			return fail("Cannot assign %d %s: %v.", count, j, err)
		}
		s.SyncMilitary()
		return succeed("%s now number %d.", j, count)
	})
}

// Unit types for OrganizeUnits.
const (
	UnitInfantry = "infantry"
	UnitArchers  = "archers"
	UnitCavalry  = "cavalry"
	UnitMages    = "mage_warriors"
)

// MageTechnology unlocks mage warriors.
const MageTechnology = "magic_theory"

func inBattle(s *realm.State) bool {
	return s.Battle != nil && s.Battle.Ongoing()
}

// OrganizeUnits assigns soldiers to a unit type.
func (e *Engine) OrganizeUnits(unit string, count int) Result {
	return e.command(func(s *realm.State) Result {
		if inBattle(s) {
			return fail("The army cannot be reorganized in the middle of a battle.")
		}
		m := &s.Military
		var target *int
		switch unit {
		case UnitInfantry:
			target = &m.Infantry
		case UnitArchers:
			target = &m.Archers
		case UnitCavalry:
			target = &m.Cavalry
		case UnitMages:
			if count > 0 && !s.Researched(MageTechnology) {
				return fail("Mage warriors require %s.", displayName(MageTechnology))
			}
			target = &m.MageWarriors
		default:
			return fail("Unknown unit type %q.", unit)
		}
		if count < 0 {
			return fail("Count must not be negative.")
		}
		others := m.Assigned() - *target
		if others+count > m.TotalSoldiers {
			return fail("Only %d soldiers are available for %s.", m.TotalSoldiers-others, unit)
		}
		*target = count
		return succeed("%d soldiers now serve as %s.", count, unit)
	})
}

// HireSpecialist employs a specialist template.
func (e *Engine) HireSpecialist(templateID string) Result {
	return e.command(func(s *realm.State) Result {
		t, ok := catalog.Specialist(templateID)
		if !ok {
			return unknown("specialist", templateID, catalog.KindSpecialist)
		}
		if slices.ContainsFunc(s.Specialists, func(sp realm.Specialist) bool { return sp.TemplateID == templateID }) {
			return fail("%s is already in our service.", t.Name)
		}
		if s.Resources.Gold < t.Salary {
			return fail("%s asks %.0f gold a month; we have %.0f.", t.Name, t.Salary, s.Resources.Gold)
		}
		s.Specialists = append(s.Specialists, realm.Specialist{
			ID:         uuid.NewString(),
			TemplateID: templateID,
			HiredAt:    s.DayNumber(),
		})
		s.Logf(realm.CategoryDomestic, "%s has entered our service.", t.Name)
		return succeed("%s hired.", t.Name)
	})
}

// DismissSpecialist releases a specialist by instance or template ID.
func (e *Engine) DismissSpecialist(id string) Result {
	return e.command(func(s *realm.State) Result {
		i := slices.IndexFunc(s.Specialists, func(sp realm.Specialist) bool {
			return sp.ID == id || sp.TemplateID == id
		})
		if i < 0 {
			return fail("No specialist %q in our service.", id)
		}
		sp := s.Specialists[i]
		s.Specialists = slices.Delete(s.Specialists, i, i+1)
		name := sp.TemplateID
		if t, ok := catalog.Specialist(sp.TemplateID); ok {
			name = t.Name
		}
		s.Logf(realm.CategoryDomestic, "%s has left our service.", name)
		return succeed("%s dismissed.", name)
	})
}

// HireHero employs a hero template.
func (e *Engine) HireHero(templateID string) Result {
	return e.command(func(s *realm.State) Result {
		t, ok := catalog.Hero(templateID)
		if !ok {
			return unknown("hero", templateID, catalog.KindHero)
		}
		if slices.ContainsFunc(s.Heroes, func(h realm.Hero) bool { return h.TemplateID == templateID }) {
			return fail("%s already fights for us.", t.Name)
		}
		if s.Resources.Gold < t.Salary {
			return fail("%s asks %.0f gold a month; we have %.0f.", t.Name, t.Salary, s.Resources.Gold)
		}
		s.Heroes = append(s.Heroes, realm.NewHero(templateID, s.DayNumber(), e.rng))
		s.AddLog(realm.CategoryMilitary, realm.PriorityHigh, fmt.Sprintf("%s, %s, joins our cause.", t.Name, t.Ability))
		return succeed("%s hired.", t.Name)
	})
}

// DismissHero releases a hero by instance or template ID.
func (e *Engine) DismissHero(id string) Result {
	return e.command(func(s *realm.State) Result {
		i := slices.IndexFunc(s.Heroes, func(h realm.Hero) bool {
			return h.ID == id || h.TemplateID == id
		})
		if i < 0 {
			return fail("No hero %q in our service.", id)
		}
		h := s.Heroes[i]
		s.Heroes = slices.Delete(s.Heroes, i, i+1)
		name := h.TemplateID
		if t, ok := catalog.Hero(h.TemplateID); ok {
			name = t.Name
		}
		s.Logf(realm.CategoryMilitary, "%s has departed.", name)
		return succeed("%s dismissed.", name)
	})
}
