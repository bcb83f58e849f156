package engine

import (
	"fmt"
	"math"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/realm"
)

// FireballNationDamage is the share of military power a fireball burns
// outside of battle.
const FireballNationDamage = 0.05

// CastMagic casts spell id. Damage spells strike the ongoing battle, or
// target a nation when no battle is active.
func (e *Engine) CastMagic(id, target string) Result {
	return e.command(func(s *realm.State) Result {
		def, ok := catalog.Spell(id)
		if !ok {
			return unknown("spell", id, catalog.KindSpell)
		}
		if def.Requires != "" && !s.Researched(def.Requires) {
			return fail("%s requires %s.", def.Name, displayName(def.Requires))
		}
		if s.Resources.Mana < def.ManaCost {
			return fail("%s needs %.0f mana; we have %.0f.", def.Name, def.ManaCost, s.Resources.Mana)
		}

		var msg string
		switch {
		case def.Effect.Type == catalog.EffectSatisfaction:
			s.AdjustSatisfaction(int(def.Effect.Value))
			msg = fmt.Sprintf("%s lifts the people's spirits.", def.Name)
		case def.Effect.Type == catalog.EffectDamage:
			if b := s.Battle; b != nil && b.Ongoing() {
				killed := b.Strike(def.Effect.Value)
				msg = fmt.Sprintf("%s tears through the enemy lines, killing %d.", def.Name, killed)
				break
			}
			n, r := e.targetNation(target)
			if n == nil {
				if target == "" {
					return fail("%s needs a battle or a target nation.", def.Name)
				}
				return r
			}
			burned := int(math.Floor(float64(n.MilitaryPower) * FireballNationDamage))
			n.MilitaryPower -= burned
			n.AdjustRelation(-10)
			msg = fmt.Sprintf("%s rains down on %s, destroying %d troops.", def.Name, n.Name, burned)
		case def.DurationDays > 0:
			kept := s.ActiveEffects[:0]
			for _, fx := range s.ActiveEffects {
				if fx.Source != def.ID {
					kept = append(kept, fx)
				}
			}
			s.ActiveEffects = append(kept, realm.ActiveEffect{
				Source:     def.ID,
				Type:       def.Effect.Type,
				Value:      def.Effect.Value,
				ExpiresDay: s.Day + def.DurationDays,
			})
			msg = fmt.Sprintf("%s takes hold for %.0f days.", def.Name, def.DurationDays)
		default:
			return fail("%s cannot be cast.", def.Name)
		}

		s.Resources.Mana -= def.ManaCost
		s.Logf(realm.CategoryDomestic, "%s", msg)
		return succeed("%s", msg)
	})
}
