package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	buildingIndex   = make(map[string]*BuildingDef, len(Buildings))
	techIndex       = make(map[string]*TechDef, len(Technologies))
	specialistIndex = make(map[string]*SpecialistTemplate, len(Specialists))
	heroIndex       = make(map[string]*HeroTemplate, len(Heroes))
	spellIndex      = make(map[string]*SpellDef, len(Spells))
	upgradeIndex    = make(map[string]*Upgrade, len(Upgrades))
)

func init() {
	for i := range Buildings {
		buildingIndex[Buildings[i].ID] = &Buildings[i]
	}
	for i := range Technologies {
		techIndex[Technologies[i].ID] = &Technologies[i]
	}
	for i := range Specialists {
		specialistIndex[Specialists[i].ID] = &Specialists[i]
	}
	for i := range Heroes {
		heroIndex[Heroes[i].ID] = &Heroes[i]
	}
	for i := range Spells {
		spellIndex[Spells[i].ID] = &Spells[i]
	}
	for i := range Upgrades {
		upgradeIndex[Upgrades[i].ID] = &Upgrades[i]
	}
}

// Building returns the building definition for id.
func Building(id string) (*BuildingDef, bool) {
	b, ok := buildingIndex[id]
	return b, ok
}

// Technology returns the technology definition for id.
func Technology(id string) (*TechDef, bool) {
	t, ok := techIndex[id]
	return t, ok
}

// Specialist returns the specialist template for id.
func Specialist(id string) (*SpecialistTemplate, bool) {
	s, ok := specialistIndex[id]
	return s, ok
}

// Hero returns the hero template for id.
func Hero(id string) (*HeroTemplate, bool) {
	h, ok := heroIndex[id]
	return h, ok
}

// Spell returns the spell definition for id.
func Spell(id string) (*SpellDef, bool) {
	s, ok := spellIndex[id]
	return s, ok
}

// UpgradeByID returns the prestige upgrade for id.
func UpgradeByID(id string) (*Upgrade, bool) {
	u, ok := upgradeIndex[id]
	return u, ok
}

// UnlockedBy lists buildings that name techID as a prerequisite.
func UnlockedBy(techID string) []*BuildingDef {
	var out []*BuildingDef
	for i := range Buildings {
		for _, p := range Buildings[i].Prerequisites {
			if p == techID {
				out = append(out, &Buildings[i])
				break
			}
		}
	}
	return out
}

// Kind selects which ID space Suggest searches.
type Kind int

const (
	KindBuilding Kind = iota
	KindTechnology
	KindSpecialist
	KindHero
	KindSpell
	KindUpgrade
)

func (k Kind) ids() []string {
	var ids []string
	switch k {
	case KindBuilding:
		for id := range buildingIndex {
			ids = append(ids, id)
		}
	case KindTechnology:
		for id := range techIndex {
			ids = append(ids, id)
		}
	case KindSpecialist:
		for id := range specialistIndex {
			ids = append(ids, id)
		}
	case KindHero:
		for id := range heroIndex {
			ids = append(ids, id)
		}
	case KindSpell:
		for id := range spellIndex {
			ids = append(ids, id)
		}
	case KindUpgrade:
		for id := range upgradeIndex {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Suggest returns the closest known ID to a mistyped one, or "" when
// nothing is near enough.
func Suggest(kind Kind, id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, cand := range kind.ids() {
		dist := levenshtein.ComputeDistance(id, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
