package combat

import (
	"fmt"
	"math"

	"github.com/talgya/axinode/internal/entropy"
)

// Battle timing and attrition constants.
const (
	TickInterval        = 10.0 // battle-seconds between exchanges
	AttackerDamageRate  = 0.10 // share of enemy power the player loses per exchange
	DefenderDamageRate  = 0.08 // share of player power the enemy loses per exchange
	MoraleGain          = 2
	MoraleLoss          = 3
	RoutMoraleThreshold = 30
	RoutChance          = 0.2
	DefeatThreshold     = 0.3 // troops at or below this share of initial = broken
	EnemyStartMorale    = 70
	maxLogLines         = 30
)

// Result is the battle state.
type Result string

const (
	Ongoing Result = "ongoing"
	Victory Result = "victory"
	Defeat  Result = "defeat"
	Retreat Result = "retreat"
)

// Side is one army's live and initial figures.
type Side struct {
	Troops       int `json:"troops"`
	Initial      int `json:"initial"`
	Power        int `json:"power"`
	InitialPower int `json:"initial_power"`
	Morale       int `json:"morale"`
}

// LogEntry is one line of the battle report.
type LogEntry struct {
	Time    float64 `json:"time"` // battle-seconds since start
	Message string  `json:"message"`
	Kind    string  `json:"kind"` // info, important, critical, victory, defeat
}

// Spoils are gold and ore gained (positive) or lost (negative) on resolution.
type Spoils struct {
	Gold float64 `json:"gold"`
	Ore  float64 `json:"ore"`
}

// Battle is a single engagement with a rival nation.
type Battle struct {
	ID         string     `json:"id"`
	NationID   string     `json:"nation_id"`
	NationName string     `json:"nation_name"`
	Defensive  bool       `json:"defensive"`
	Player     Side       `json:"player"`
	Enemy      Side       `json:"enemy"`
	Elapsed    float64    `json:"elapsed"`
	LastTick   float64    `json:"last_tick"`
	Exchanges  int        `json:"exchanges"`
	Log        []LogEntry `json:"log"`
	Result     Result     `json:"result"`
	Resolved   bool       `json:"resolved"`
	Spoils     Spoils     `json:"spoils"`
}

// New snapshots both sides at the start of an engagement. Powers are
// floored at 1 so every exchange inflicts losses.
func New(id, nationID, nationName string, defensive bool, player, enemy Side) *Battle {
	for _, s := range []*Side{&player, &enemy} {
		s.Power = max(1, s.Power)
		s.Initial = s.Troops
		s.InitialPower = s.Power
		s.Morale = clampMorale(s.Morale)
	}
	b := &Battle{
		ID:         id,
		NationID:   nationID,
		NationName: nationName,
		Defensive:  defensive,
		Player:     player,
		Enemy:      enemy,
		Result:     Ongoing,
	}
	kind := "our attack on"
	if defensive {
		kind = "defense against"
	}
	b.addLog("important", fmt.Sprintf("Battle begins: %s %s (%d troops vs %d)", kind, nationName, player.Troops, enemy.Troops))
	return b
}

// Ongoing reports whether the battle is still being fought.
func (b *Battle) Ongoing() bool {
	return b.Result == Ongoing
}

// Advance adds battle time and runs every exchange that falls due.
// Returns true if at least one exchange ran.
func (b *Battle) Advance(seconds float64, rng entropy.Source) bool {
	if !b.Ongoing() || seconds <= 0 {
		return false
	}
	b.Elapsed += seconds
	ran := false
	for b.Ongoing() && b.Elapsed-b.LastTick >= TickInterval {
		b.LastTick += TickInterval
		b.Exchange(rng)
		ran = true
	}
	return ran
}

// Exchange runs one round of attrition followed by the termination checks.
func (b *Battle) Exchange(rng entropy.Source) {
	if !b.Ongoing() {
		return
	}
	b.Exchanges++

	playerDamage := int(math.Ceil(float64(b.Enemy.Power) * AttackerDamageRate))
	enemyDamage := int(math.Ceil(float64(b.Player.Power) * DefenderDamageRate))
	b.Player.Troops = max(0, b.Player.Troops-playerDamage)
	b.Enemy.Troops = max(0, b.Enemy.Troops-enemyDamage)

	switch {
	case b.Player.Power > b.Enemy.Power:
		b.Player.Morale = clampMorale(b.Player.Morale + MoraleGain)
		b.Enemy.Morale = clampMorale(b.Enemy.Morale - MoraleLoss)
	case b.Enemy.Power > b.Player.Power:
		b.Enemy.Morale = clampMorale(b.Enemy.Morale + MoraleGain)
		b.Player.Morale = clampMorale(b.Player.Morale - MoraleLoss)
	}

	b.Player.rederive()
	b.Enemy.rederive()

	b.addLog("info", fmt.Sprintf("Exchange %d: we lost %d, they lost %d (troops %d/%d, morale %d/%d)",
		b.Exchanges, playerDamage, enemyDamage, b.Player.Troops, b.Enemy.Troops, b.Player.Morale, b.Enemy.Morale))

	b.checkTermination(rng)
}

func (b *Battle) checkTermination(rng entropy.Source) {
	switch {
	case broken(b.Player):
		b.finish(Defeat, "Our lines have collapsed.")
	case broken(b.Enemy):
		b.finish(Victory, "The enemy army is shattered.")
	case b.Player.Morale <= 0:
		b.finish(Defeat, "Our soldiers have lost the will to fight.")
	case b.Enemy.Morale <= 0:
		b.finish(Victory, "The enemy has lost the will to fight.")
	case b.Player.Morale <= RoutMoraleThreshold && entropy.Chance(rng, RoutChance):
		b.finish(Defeat, "Our army routs!")
	case b.Enemy.Morale <= RoutMoraleThreshold && entropy.Chance(rng, RoutChance):
		b.finish(Victory, "The enemy routs!")
	}
}

func broken(s Side) bool {
	return float64(s.Troops) <= DefeatThreshold*float64(s.Initial)
}

// Retreat withdraws the player from an ongoing battle.
func (b *Battle) Retreat() bool {
	if !b.Ongoing() {
		return false
	}
	b.finish(Retreat, "We sound the retreat.")
	return true
}

// Strike removes a share of enemy troops outside the normal exchange, as
// from a spell. Returns the troops destroyed.
func (b *Battle) Strike(percent float64) int {
	if !b.Ongoing() || b.Enemy.Troops == 0 {
		return 0
	}
	killed := int(math.Ceil(float64(b.Enemy.Troops) * percent / 100))
	killed = min(killed, b.Enemy.Troops)
	b.Enemy.Troops -= killed
	b.Enemy.rederive()
	b.addLog("important", fmt.Sprintf("A sudden strike kills %d enemy soldiers.", killed))
	return killed
}

// Losses returns troops lost so far by each side.
func (b *Battle) Losses() (player, enemy int) {
	return b.Player.Initial - b.Player.Troops, b.Enemy.Initial - b.Enemy.Troops
}

// Clone returns a deep copy.
func (b *Battle) Clone() *Battle {
	if b == nil {
		return nil
	}
	c := *b
	c.Log = append(make([]LogEntry, 0, len(b.Log)), b.Log...)
	return &c
}

func (b *Battle) finish(r Result, message string) {
	b.Result = r
	kind := "important"
	switch r {
	case Victory:
		kind = "victory"
	case Defeat:
		kind = "defeat"
	}
	b.addLog(kind, message)
}

func (b *Battle) addLog(kind, message string) {
	b.Log = append(b.Log, LogEntry{Time: b.Elapsed, Message: message, Kind: kind})
	if len(b.Log) > maxLogLines {
		b.Log = b.Log[len(b.Log)-maxLogLines:]
	}
}

// rederive scales power with the surviving share of troops, floored at 1.
func (s *Side) rederive() {
	if s.Initial <= 0 {
		s.Power = 1
		return
	}
	s.Power = max(1, floor(float64(s.InitialPower)*float64(s.Troops)/float64(s.Initial)))
}

func clampMorale(m int) int {
	return max(0, min(100, m))
}
