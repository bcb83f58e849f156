package catalog

// Technologies is the research tree. Tier 4 holds the end-game ascension.
var Technologies = []TechDef{
	// Agriculture.
	{ID: "crop_rotation", Name: "Crop Rotation", Description: "Fallow cycles keep the soil rich.",
		Tier: 1, Category: CategoryAgriculture, Cost: Cost{Gold: 200}, ResearchTime: 60,
		Effect: Effect{EffectFarmEfficiency, 20}},
	{ID: "irrigation", Name: "Irrigation", Description: "Canals carry water to dry fields.",
		Tier: 2, Category: CategoryAgriculture, Cost: Cost{Gold: 500}, ResearchTime: 120,
		Prerequisites: []string{"crop_rotation"}, Effect: Effect{EffectFarmEfficiency, 30}},

	// Industry.
	{ID: "mining_techniques", Name: "Mining Techniques", Description: "Timbered shafts and better picks.",
		Tier: 1, Category: CategoryIndustry, Cost: Cost{Gold: 200}, ResearchTime: 60,
		Effect: Effect{EffectMiningEfficiency, 25}},
	{ID: "smelting", Name: "Smelting", Description: "Hotter furnaces for plate and mail.",
		Tier: 2, Category: CategoryIndustry, Cost: Cost{Gold: 600}, ResearchTime: 120,
		Prerequisites: []string{"mining_techniques"}, Effect: Effect{EffectArmorProduction, 30}},
	{ID: "mass_production", Name: "Mass Production", Description: "Standard parts for every workshop.",
		Tier: 3, Category: CategoryIndustry, Cost: Cost{Gold: 1500}, ResearchTime: 240,
		Prerequisites: []string{"smelting"}, Effect: Effect{EffectProductionBonus, 15}},

	// Military.
	{ID: "bronze_weapons", Name: "Bronze Weapons", Description: "Cast blades that hold an edge.",
		Tier: 1, Category: CategoryMilitary, Cost: Cost{Gold: 300}, ResearchTime: 90,
		Effect: Effect{EffectCombatPower, 10}},
	{ID: "forging", Name: "Forging", Description: "Quenched steel from skilled smiths.",
		Tier: 2, Category: CategoryMilitary, Cost: Cost{Gold: 600}, ResearchTime: 120,
		Prerequisites: []string{"bronze_weapons"}, Effect: Effect{EffectWeaponProduction, 25}},
	{ID: "iron_weapons", Name: "Iron Weapons", Description: "Iron arms for the whole army.",
		Tier: 2, Category: CategoryMilitary, Cost: Cost{Gold: 800}, ResearchTime: 150,
		Prerequisites: []string{"bronze_weapons", "mining_techniques"}, Effect: Effect{EffectCombatPower, 15}},

	// Economy.
	{ID: "taxation", Name: "Taxation", Description: "Registers and assessors for fair levies.",
		Tier: 1, Category: CategoryEconomy, Cost: Cost{Gold: 250}, ResearchTime: 60,
		Effect: Effect{EffectTaxBonus, 15}},
	{ID: "architecture", Name: "Architecture", Description: "Plans that let crews build in parallel.",
		Tier: 2, Category: CategoryEconomy, Cost: Cost{Gold: 700}, ResearchTime: 150,
		Effect: Effect{EffectConstructionSlots, 1}},
	{ID: "scholarship", Name: "Scholarship", Description: "Academies that pursue several inquiries at once.",
		Tier: 2, Category: CategoryEconomy, Cost: Cost{Gold: 700}, ResearchTime: 150,
		Prerequisites: []string{"taxation"}, Effect: Effect{EffectResearchSlots, 1}},
	{ID: "banking", Name: "Banking", Description: "Letters of credit and a royal mint.",
		Tier: 3, Category: CategoryEconomy, Cost: Cost{Gold: 2000}, ResearchTime: 240,
		Prerequisites: []string{"taxation"}, Effect: Effect{EffectTaxBonus, 25}},

	// Magic.
	{ID: "magic_theory", Name: "Magic Theory", Description: "The first grammar of the arcane.",
		Tier: 2, Category: CategoryMagic, Cost: Cost{Gold: 1000}, ResearchTime: 180,
		Effect: Effect{EffectUnlockBuilding, 1}},
	{ID: "elemental_magic", Name: "Elemental Magic", Description: "Fire and storm bent to the caster's will.",
		Tier: 3, Category: CategoryMagic, Cost: Cost{Gold: 2500, Mana: 100}, ResearchTime: 240,
		Prerequisites: []string{"magic_theory"}, Effect: Effect{EffectCombatPower, 10}},

	// Fantasy.
	{ID: "ascension", Name: "Ascension", Description: "The nation transcends the mortal age.",
		Tier: 4, Category: CategoryFantasy, Cost: Cost{Gold: 20000, Mana: 500}, ResearchTime: 600,
		Prerequisites: []string{"elemental_magic", "banking", "mass_production"},
		Effect:        Effect{EffectAscension, 1}},
}

// AscensionTech is the end-tier technology required for a technological victory.
const AscensionTech = "ascension"
