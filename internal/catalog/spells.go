package catalog

// SpellDef describes a castable spell. Duration 0 means instant.
type SpellDef struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ManaCost     float64 `json:"mana_cost"`
	Requires     string  `json:"requires,omitempty"` // technology ID
	Effect       Effect  `json:"effect"`
	DurationDays float64 `json:"duration_days,omitempty"`
	Targeted     bool    `json:"targeted"`
}

var Spells = []SpellDef{
	{ID: "blessing", Name: "Blessing", ManaCost: 50, Effect: Effect{EffectSatisfaction, 10}},
	{ID: "harvest", Name: "Bountiful Harvest", ManaCost: 60, Requires: "magic_theory",
		Effect: Effect{EffectFoodProduction, 50}, DurationDays: 15},
	{ID: "barrier", Name: "Barrier", ManaCost: 80, Requires: "magic_theory",
		Effect: Effect{EffectDefenseBonus, 30}, DurationDays: 30},
	{ID: "fireball", Name: "Fireball", ManaCost: 100, Requires: "elemental_magic",
		Effect: Effect{EffectDamage, 10}, Targeted: true},
}
