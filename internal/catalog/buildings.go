package catalog

// Buildings is the full construction catalog, ordered by tier.
var Buildings = []BuildingDef{
	// Tier 1.
	{ID: "farm_lv1", Name: "Farm Lv1", Description: "Basic fields that raise food output.", Tier: 1,
		Cost: Cost{Gold: 100}, BuildTime: 30, Effect: Effect{EffectFoodProduction, 50}},
	{ID: "mine_lv1", Name: "Mine Lv1", Description: "Shafts for ore extraction.", Tier: 1,
		Cost: Cost{Gold: 150}, BuildTime: 45, Effect: Effect{EffectOreProduction, 100}},
	{ID: "workshop_lv1", Name: "Workshop Lv1", Description: "Forges weapons and tools.", Tier: 1,
		Cost: Cost{Gold: 200}, BuildTime: 60, Effect: Effect{EffectWeaponProduction, 50}},
	{ID: "armory", Name: "Armory", Description: "Hammers out shields and mail.", Tier: 1,
		Cost: Cost{Gold: 250}, BuildTime: 60, Effect: Effect{EffectArmorProduction, 50}},

	// Tier 2.
	{ID: "farm_lv2", Name: "Farm Lv2", Description: "Large estates with tended orchards.", Tier: 2,
		Cost: Cost{Gold: 500, Ore: 20}, BuildTime: 90, Effect: Effect{EffectFoodProduction, 100},
		Prerequisites: []string{"farm_lv1"}},
	{ID: "mine_lv2", Name: "Mine Lv2", Description: "Deep galleries with pumps.", Tier: 2,
		Cost: Cost{Gold: 600, Ore: 30}, BuildTime: 100, Effect: Effect{EffectOreProduction, 200},
		Prerequisites: []string{"mine_lv1"}},
	{ID: "workshop_lv2", Name: "Workshop Lv2", Description: "A guild of weaponsmiths.", Tier: 2,
		Cost: Cost{Gold: 700, Ore: 25}, BuildTime: 110, Effect: Effect{EffectWeaponProduction, 100},
		Prerequisites: []string{"workshop_lv1"}},
	{ID: "market", Name: "Market", Description: "Draws caravans and strengthens trade.", Tier: 2,
		Cost: Cost{Gold: 800}, BuildTime: 120, Effect: Effect{EffectTradeBonus, 20}, MaxCount: 1},
	{ID: "counting_house", Name: "Counting House", Description: "Clerks that make tax collection honest.", Tier: 2,
		Cost: Cost{Gold: 900}, BuildTime: 120, Effect: Effect{EffectTaxBonus, 20},
		Prerequisites: []string{"taxation"}, MaxCount: 1},
	{ID: "barracks", Name: "Barracks", Description: "Quarters and drill yards for the army.", Tier: 2,
		Cost: Cost{Gold: 1000}, BuildTime: 150, Effect: Effect{EffectTrainingSpeed, 50}, MaxCount: 1},
	{ID: "training_ground", Name: "Training Ground", Description: "Raises the fighting spirit of troops.", Tier: 2,
		Cost: Cost{Gold: 600}, BuildTime: 90, Effect: Effect{EffectMoraleBonus, 10}, MaxCount: 1},
	{ID: "builders_guild", Name: "Builders' Guild", Description: "Masons who speed every project.", Tier: 2,
		Cost: Cost{Gold: 1200, Ore: 40}, BuildTime: 150, Effect: Effect{EffectConstructionSpeed, 25},
		Prerequisites: []string{"architecture"}, MaxCount: 1},

	// Tier 3.
	{ID: "farm_lv3", Name: "Farm Lv3", Description: "The most efficient farmland in the realm.", Tier: 3,
		Cost: Cost{Gold: 1500, Ore: 50}, BuildTime: 150, Effect: Effect{EffectFoodProduction, 150},
		Prerequisites: []string{"farm_lv2"}},
	{ID: "magic_tower_lv1", Name: "Magic Tower Lv1", Description: "Condenses mana from the ley lines.", Tier: 3,
		Cost: Cost{Gold: 3000, Ore: 100}, BuildTime: 180, Effect: Effect{EffectManaGeneration, 10},
		Prerequisites: []string{"magic_theory"}, MaxCount: 1},
	{ID: "magic_tower_lv2", Name: "Magic Tower Lv2", Description: "A taller spire with a stronger draw.", Tier: 3,
		Cost: Cost{Gold: 6000, Ore: 200, Mana: 100}, BuildTime: 240, Effect: Effect{EffectManaGeneration, 30},
		Prerequisites: []string{"magic_tower_lv1"}, MaxCount: 1},
	{ID: "magic_tower_lv3", Name: "Magic Tower Lv3", Description: "A spire that hums day and night.", Tier: 3,
		Cost: Cost{Gold: 12000, Ore: 400, Mana: 300}, BuildTime: 300, Effect: Effect{EffectManaGeneration, 70},
		Prerequisites: []string{"magic_tower_lv2"}, MaxCount: 1},
	{ID: "magic_academy", Name: "Magic Academy", Description: "Trains mages and refines spellcraft.", Tier: 3,
		Cost: Cost{Gold: 5000, Ore: 150, Mana: 50}, BuildTime: 200, Effect: Effect{EffectManaGeneration, 20},
		Prerequisites: []string{"magic_tower_lv1"}, MaxCount: 1},
	{ID: "research_lab", Name: "Research Lab", Description: "Speeds research across every field.", Tier: 3,
		Cost: Cost{Gold: 5000}, BuildTime: 180, Effect: Effect{EffectResearchSpeed, 30}, MaxCount: 1},
	{ID: "walls_lv1", Name: "City Walls", Description: "Stone walls that favor the defender.", Tier: 3,
		Cost: Cost{Gold: 4000, Ore: 200}, BuildTime: 180, Effect: Effect{EffectDefense, 50}, MaxCount: 1},
}
