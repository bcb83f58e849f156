package catalog

// Upgrade is a prestige purchase applied to every later new game.
type Upgrade struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Cost        int     `json:"cost"` // prestige points
	Gold        float64 `json:"gold,omitempty"`
	Food        float64 `json:"food,omitempty"`
	Soldiers    int     `json:"soldiers,omitempty"`
	Description string  `json:"description"`
}

var Upgrades = []Upgrade{
	{ID: "treasury", Name: "Royal Treasury", Cost: 50, Gold: 300, Description: "Start with 300 extra gold."},
	{ID: "granary", Name: "Full Granary", Cost: 30, Food: 150, Description: "Start with 150 extra food."},
	{ID: "militia", Name: "Town Militia", Cost: 40, Soldiers: 3, Description: "Start with three extra soldiers."},
}
