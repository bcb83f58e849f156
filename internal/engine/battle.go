package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/combat"
	"github.com/talgya/axinode/internal/economy"
	"github.com/talgya/axinode/internal/realm"
)

// Battle consequences.
const (
	AllianceBonus        = 10.0 // combat percent per ally not involved
	VictoryMorale        = 10
	DefeatMorale         = -15
	RetreatMorale        = -5
	ConquestGoldShare    = 0.5 // of the conquered nation's economic power
	ConquestOreShare     = 0.2 // of the enemy's initial troops
	DefenseSpoilsShare   = 1.0 // gold per initial enemy troop
	DefeatGoldLoss       = 0.2
	ConquestReputation   = -5
	DefenseRelationBonus = 5
)

// playerBonus sums the percentage bonuses that apply to the army in stance
// against the nation enemyID.
func (e *Engine) playerBonus(stance combat.Stance, enemyID string) float64 {
	s := &e.state
	bonus := economy.Bonus(s, catalog.EffectCombatPower)
	if stance == combat.Defense {
		bonus += economy.Bonus(s, catalog.EffectDefense, catalog.EffectDefenseBonus)
	}
	for _, n := range s.LivingNations() {
		if n.ID != enemyID && n.HasTreaty(realm.TreatyAlliance) {
			bonus += AllianceBonus
		}
	}
	return bonus
}

// battleMorale is the army's morale once buildings, specialists and heroes
// have lifted it.
func (e *Engine) battleMorale() int {
	s := &e.state
	lift := economy.Bonus(s, catalog.EffectMoraleBonus, catalog.EffectMoraleLock)
	return min(100, s.Military.Morale+int(lift))
}

// heroPower is the flat combat power heroes add to the army.
func (e *Engine) heroPower() int {
	total := 0
	for _, h := range e.state.Heroes {
		if t, ok := catalog.Hero(h.TemplateID); ok {
			total += t.CombatPower
		}
	}
	return total
}

// playerStrength is the army's combat power in stance, not counting heroes.
// Rival nations weigh it when deciding whether to attack.
func (e *Engine) playerStrength(stance combat.Stance, enemyID string) int {
	s := &e.state
	return combat.Power(s.Military.Forces(), stance, s.Military.EquipmentRate, e.battleMorale(), e.playerBonus(stance, enemyID))
}

// startBattle engages nation n. It does nothing if a battle is already
// active.
func (e *Engine) startBattle(n *realm.Nation, defensive bool) bool {
	s := &e.state
	if s.Battle != nil {
		return false
	}
	stance := combat.Offense
	if defensive {
		stance = combat.Defense
	}

	player := combat.Side{
		Troops: s.Military.TotalSoldiers,
		Power:  e.playerStrength(stance, n.ID) + e.heroPower(),
		Morale: e.battleMorale(),
	}
	enemy := combat.Side{
		Troops: n.MilitaryPower,
		Power:  combat.EnemyPower(n.MilitaryPower, combat.EnemyStartMorale),
		Morale: combat.EnemyStartMorale,
	}
	b := combat.New(uuid.NewString(), n.ID, n.Name, defensive, player, enemy)

	// Heroes open with a strike before the lines close.
	if v := economy.Bonus(s, catalog.EffectFirstStrike); v > 0 {
		b.Strike(v / 3)
	}
	if v := economy.Bonus(s, catalog.EffectInstantKill); v > 0 {
		b.Strike(v / 10)
	}

	s.Battle = b
	if defensive {
		s.AddLog(realm.CategoryBattle, realm.PriorityCritical,
			fmt.Sprintf("%s attacks! %d of our soldiers face %d.", n.Name, player.Troops, enemy.Troops))
	} else {
		s.AddLog(realm.CategoryBattle, realm.PriorityHigh,
			fmt.Sprintf("Our army of %d marches against %s.", player.Troops, n.Name))
	}
	return true
}

// advanceBattle runs combat exchanges and resolves a finished battle once.
func (e *Engine) advanceBattle(sim float64) {
	b := e.state.Battle
	if b == nil {
		return
	}
	if b.Ongoing() {
		b.Advance(sim, e.rng)
	}
	if !b.Ongoing() && !b.Resolved {
		e.resolveBattle()
	}
}

// resolveBattle applies a finished battle to the permanent state.
func (e *Engine) resolveBattle() {
	s := &e.state
	b := s.Battle
	if b == nil || b.Resolved || b.Ongoing() {
		return
	}
	b.Resolved = true

	lost, enemyLost := b.Losses()
	if lost > 0 {
		s.Population.Remove(lost, []realm.Job{realm.Soldiers})
		s.SyncMilitary()
	}

	n := s.Nation(b.NationID)
	if n != nil {
		n.MilitaryPower = max(0, n.MilitaryPower-enemyLost)
		n.LastActionDay = s.DayNumber()
	}

	switch b.Result {
	case combat.Victory:
		s.AdjustMorale(VictoryMorale)
		if b.Defensive {
			b.Spoils.Gold = math.Floor(float64(b.Enemy.Initial) * DefenseSpoilsShare)
			if n != nil {
				n.AdjustRelation(DefenseRelationBonus)
			}
		} else {
			if n != nil {
				b.Spoils.Gold = math.Floor(float64(n.EconomicPower) * ConquestGoldShare)
				n.Defeated = true
				n.AtWar = false
				n.Treaties = nil
			}
			b.Spoils.Ore = math.Floor(float64(b.Enemy.Initial) * ConquestOreShare)
			s.Conquests++
			s.AdjustReputation(ConquestReputation)
		}
		s.Resources.Gold += b.Spoils.Gold
		s.Resources.Ore += b.Spoils.Ore
		s.AddLog(realm.CategoryBattle, realm.PriorityHigh, fmt.Sprintf(
			"Victory over %s! We lost %d soldiers and took %.0f gold and %.0f ore.",
			b.NationName, lost, b.Spoils.Gold, b.Spoils.Ore))
		if !b.Defensive {
			s.AddLog(realm.CategoryImportant, realm.PriorityCritical, fmt.Sprintf("%s has fallen to our armies.", b.NationName))
		}
	case combat.Defeat:
		s.AdjustMorale(DefeatMorale)
		if b.Defensive {
			loss := math.Floor(max(0, s.Resources.Gold) * DefeatGoldLoss)
			s.Resources.Gold -= loss
			b.Spoils.Gold = -loss
		}
		s.AddLog(realm.CategoryBattle, realm.PriorityCritical, fmt.Sprintf(
			"Defeat against %s. We lost %d soldiers and %.0f gold.", b.NationName, lost, -b.Spoils.Gold))
	case combat.Retreat:
		s.AdjustMorale(RetreatMorale)
		s.AddLog(realm.CategoryBattle, realm.PriorityHigh, fmt.Sprintf(
			"We withdrew from the field against %s after losing %d soldiers.", b.NationName, lost))
	}
	s.Resources.Clamp()
}

// AttackNation declares war if needed and starts an offensive battle.
func (e *Engine) AttackNation(id string) Result {
	return e.command(func(s *realm.State) Result {
		if s.Battle != nil {
			return fail("A battle is already under way.")
		}
		n, r := e.targetNation(id)
		if n == nil {
			return r
		}
		if s.Military.TotalSoldiers == 0 {
			return fail("We have no soldiers to send.")
		}
		if n.Pacted() {
			s.AdjustReputation(-20)
			s.AddLog(realm.CategoryDiplomatic, realm.PriorityHigh, fmt.Sprintf("We broke our treaty with %s.", n.Name))
		}
		if !n.AtWar {
			s.AdjustReputation(-5)
			n.DeclareWar()
			s.AddLog(realm.CategoryDiplomatic, realm.PriorityCritical, fmt.Sprintf("We have declared war on %s.", n.Name))
		}
		e.startBattle(n, false)
		return succeed("Our army marches on %s.", n.Name)
	})
}

// RetreatFromBattle withdraws from the ongoing battle.
func (e *Engine) RetreatFromBattle() Result {
	return e.command(func(s *realm.State) Result {
		if s.Battle == nil || !s.Battle.Retreat() {
			return fail("There is no battle to retreat from.")
		}
		e.resolveBattle()
		return succeed("We have retreated.")
	})
}

// CloseBattle dismisses a resolved battle.
func (e *Engine) CloseBattle() Result {
	return e.command(func(s *realm.State) Result {
		if s.Battle == nil {
			return fail("There is no battle to close.")
		}
		if !s.Battle.Resolved {
			return fail("The battle is still being fought.")
		}
		s.Battle = nil
		return succeed("The battlefield is cleared.")
	})
}

// targetNation looks up a living rival for a command.
func (e *Engine) targetNation(id string) (*realm.Nation, Result) {
	n := e.state.Nation(id)
	if n == nil {
		return nil, fail("Unknown nation %q.", id)
	}
	if n.Defeated {
		return nil, fail("%s has already fallen.", n.Name)
	}
	return n, Result{}
}
