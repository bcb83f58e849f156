// Package catalog holds the static game data: buildings, technologies,
// rival-nation templates, personnel, spells and prestige upgrades.
// Everything here is read-only; dynamic flags live in realm.State.
package catalog

// Effect types shared by buildings, technologies, personnel and spells.
const (
	EffectFoodProduction    = "foodProduction"
	EffectOreProduction     = "oreProduction"
	EffectWeaponProduction  = "weaponProduction"
	EffectArmorProduction   = "armorProduction"
	EffectManaGeneration    = "manaGeneration"
	EffectFarmEfficiency    = "farmEfficiency"
	EffectMiningEfficiency  = "miningEfficiency"
	EffectProductionBonus   = "productionBonus"
	EffectTaxBonus          = "taxBonus"
	EffectTradeBonus        = "tradeBonus"
	EffectDefense           = "defense"
	EffectDefenseBonus      = "defenseBonus"
	EffectCombatPower       = "combatPower"
	EffectMoraleBonus       = "moraleBonus"
	EffectTrainingSpeed     = "trainingSpeed"
	EffectResearchSpeed     = "researchSpeed"
	EffectConstructionSpeed = "constructionSpeed"
	EffectConstructionSlots = "constructionSlots"
	EffectResearchSlots     = "researchSlots"
	EffectUnlockBuilding    = "unlockBuilding"
	EffectAscension         = "ascension"
	EffectInstantKill       = "instantKill"
	EffectFirstStrike       = "firstStrike"
	EffectMoraleLock        = "moraleLock"
	EffectSatisfaction      = "satisfaction"
	EffectDamage            = "damage"
)

// Cost is what an order or action deducts at submission.
type Cost struct {
	Gold float64 `json:"gold"`
	Ore  float64 `json:"ore,omitempty"`
	Mana float64 `json:"mana,omitempty"`
}

// Effect is a single typed bonus.
type Effect struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// BuildingDef describes a constructible building.
type BuildingDef struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Tier          int      `json:"tier"`
	Cost          Cost     `json:"cost"`
	BuildTime     float64  `json:"build_time"` // sim-seconds
	Effect        Effect   `json:"effect"`
	Prerequisites []string `json:"prerequisites,omitempty"` // technology or building IDs
	MaxCount      int      `json:"max_count,omitempty"`     // 0 = unlimited
}

// TechCategory groups technologies in the research tree.
type TechCategory string

const (
	CategoryAgriculture TechCategory = "agriculture"
	CategoryMilitary    TechCategory = "military"
	CategoryMagic       TechCategory = "magic"
	CategoryEconomy     TechCategory = "economy"
	CategoryIndustry    TechCategory = "industry"
	CategoryFantasy     TechCategory = "fantasy"
)

// TechDef describes a researchable technology.
type TechDef struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Tier          int          `json:"tier"`
	Category      TechCategory `json:"category"`
	Cost          Cost         `json:"cost"`
	ResearchTime  float64      `json:"research_time"` // sim-seconds
	Prerequisites []string     `json:"prerequisites,omitempty"`
	Effect        Effect       `json:"effect"`
}
