package catalog

// SpecialistTemplate is a hireable specialist with one passive bonus.
type SpecialistTemplate struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Kind   string  `json:"kind"` // blacksmith, merchant, farmer, scholar, general
	Bonus  Effect  `json:"bonus"`
	Salary float64 `json:"salary"` // monthly gold
}

// HeroTemplate is a hireable hero with a special ability.
type HeroTemplate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Ability     string  `json:"ability"`
	Effect      Effect  `json:"effect"`
	Salary      float64 `json:"salary"`    // monthly gold
	ManaCost    float64 `json:"mana_cost"` // daily mana
	CombatPower int     `json:"combat_power"`
}

var Specialists = []SpecialistTemplate{
	{ID: "goron", Name: "Goron the Smith", Kind: "blacksmith", Bonus: Effect{EffectWeaponProduction, 10}, Salary: 50},
	{ID: "mireille", Name: "Mireille the Trader", Kind: "merchant", Bonus: Effect{EffectTradeBonus, 5}, Salary: 30},
	{ID: "olga", Name: "Olga the Steward", Kind: "farmer", Bonus: Effect{EffectFoodProduction, 15}, Salary: 40},
	{ID: "albert", Name: "Albert the Scholar", Kind: "scholar", Bonus: Effect{EffectResearchSpeed, 10}, Salary: 45},
	{ID: "marcus", Name: "General Marcus", Kind: "general", Bonus: Effect{EffectMoraleBonus, 10}, Salary: 60},
	{ID: "volgan", Name: "Volgan the Smith", Kind: "blacksmith", Bonus: Effect{EffectWeaponProduction, 15}, Salary: 70},
	{ID: "hassan", Name: "Hassan the Caravaneer", Kind: "merchant", Bonus: Effect{EffectTradeBonus, 8}, Salary: 45},
	{ID: "emilia", Name: "Emilia the Agronomist", Kind: "farmer", Bonus: Effect{EffectFoodProduction, 20}, Salary: 55},
}

var Heroes = []HeroTemplate{
	{ID: "aries", Name: "Aries the Sword Saint", Ability: "Peerless",
		Effect: Effect{EffectInstantKill, 50}, Salary: 500, CombatPower: 100},
	{ID: "zeno", Name: "Zeno the Archmage", Ability: "Great Barrier",
		Effect: Effect{EffectDefenseBonus, 50}, Salary: 300, ManaCost: 10, CombatPower: 80},
	{ID: "gard", Name: "Gard the Ironwall", Ability: "Unyielding",
		Effect: Effect{EffectMoraleLock, 20}, Salary: 400, CombatPower: 90},
	{ID: "rin", Name: "Rin of the Gale", Ability: "Ambush",
		Effect: Effect{EffectFirstStrike, 30}, Salary: 450, CombatPower: 85},
	{ID: "merlin", Name: "Merlin the Sage", Ability: "Fount of Wisdom",
		Effect: Effect{EffectResearchSpeed, 30}, Salary: 350, ManaCost: 5, CombatPower: 40},
}
