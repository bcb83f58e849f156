// Package combat resolves attrition battles between the player's army and a
// rival nation. A Battle is a small state machine: ongoing until one side
// breaks, then victory, defeat or retreat.
package combat

import "math"

// Stance decides which unit types a side favors.
type Stance int

const (
	Offense Stance = iota
	Defense
)

func (s Stance) String() string {
	if s == Defense {
		return "defense"
	}
	return "offense"
}

// Forces is the player's army broken down by unit type.
type Forces struct {
	Infantry   int `json:"infantry"`
	Archers    int `json:"archers"`
	Cavalry    int `json:"cavalry"`
	Mages      int `json:"mages"`
	Unassigned int `json:"unassigned"` // line troops without a specialty
}

// Total returns every soldier in the force.
func (f Forces) Total() int {
	return f.Infantry + f.Archers + f.Cavalry + f.Mages + f.Unassigned
}

type multipliers struct {
	infantry, archers, cavalry, mages float64
}

var stanceMultipliers = map[Stance]multipliers{
	Defense: {infantry: 1.1, archers: 1.5, cavalry: 0.8, mages: 1.3},
	Offense: {infantry: 1.0, archers: 0.9, cavalry: 1.2, mages: 1.3},
}

type step struct {
	threshold int
	coef      float64
}

// Descending thresholds; the first threshold the value reaches wins.
var (
	equipmentSteps = []step{{100, 1.0}, {80, 0.9}, {60, 0.75}, {40, 0.5}, {20, 0.3}, {0, 0.2}}
	moraleSteps    = []step{{100, 1.15}, {80, 1.0}, {60, 0.85}, {40, 0.65}, {20, 0.4}}
)

func lookup(value int, steps []step) float64 {
	for _, s := range steps {
		if value >= s.threshold {
			return s.coef
		}
	}
	return steps[len(steps)-1].coef
}

// EquipmentCoefficient maps an equipment rate (0-100) to its multiplier.
func EquipmentCoefficient(rate int) float64 {
	return lookup(rate, equipmentSteps)
}

// MoraleCoefficient maps morale (0-100) to its multiplier.
func MoraleCoefficient(morale int) float64 {
	return lookup(morale, moraleSteps)
}

// Power computes a side's combat power. bonusPercent aggregates technology,
// building, magic and hero bonuses.
func Power(f Forces, stance Stance, equipmentRate, morale int, bonusPercent float64) int {
	m := stanceMultipliers[stance]
	weighted := float64(f.Infantry)*m.infantry +
		float64(f.Archers)*m.archers +
		float64(f.Cavalry)*m.cavalry +
		float64(f.Mages)*m.mages +
		float64(f.Unassigned)
	p := weighted * EquipmentCoefficient(equipmentRate) * MoraleCoefficient(morale) * (1 + bonusPercent/100)
	return floor(p)
}

// EnemyPower computes a rival's combat power from its troops and morale.
func EnemyPower(troops, morale int) int {
	return floor(float64(troops) * MoraleCoefficient(morale))
}

// floor tolerates float noise like 89.99999999999999.
func floor(x float64) int {
	return int(math.Floor(x + 1e-9))
}
