package events

import (
	"fmt"
	"math"

	"github.com/talgya/axinode/internal/entropy"
	"github.com/talgya/axinode/internal/realm"
)

// Catalog is the static event roster. Conditions are compiled at init; a
// condition that fails to compile is a programming error.
var Catalog = []*Event{
	{
		ID:          "bumper_harvest",
		Title:       "Bumper Harvest",
		Description: "The fields yielded far more than anyone expected this season.",
		Category:    realm.CategoryDomestic,
		Weight:      3,
		Condition:   "Farmers >= 5",
		Choices: []Choice{
			{Label: "Fill the granaries", Outcome: "The granaries overflow with grain.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Food += 50
					return ""
				}},
			{Label: "Sell the surplus", Outcome: "Merchants paid well for the surplus grain.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold += 80
					return ""
				}},
		},
	},
	{
		ID:          "wandering_merchant",
		Title:       "Wandering Merchant",
		Description: "A caravan master offers a cart of fine ore at a fair price.",
		Category:    realm.CategoryDomestic,
		Weight:      2,
		Condition:   "Gold >= 100",
		Choices: []Choice{
			{Label: "Buy the ore (100 gold)", Outcome: "The ore is unloaded at the smithies.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold -= 100
					s.Resources.Ore += 40
					return ""
				}},
			{Label: "Send the caravan on", Outcome: "The caravan moves on toward the next town."},
		},
	},
	{
		ID:          "refugees",
		Title:       "Refugees at the Gate",
		Description: "Families fleeing a distant war ask to settle within our borders.",
		Category:    realm.CategoryDomestic,
		Weight:      2,
		Condition:   "Satisfaction >= 50",
		Choices: []Choice{
			{Label: "Welcome them", Outcome: "Five families settle in the outskirts.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Population.Grow(5)
					s.AdjustSatisfaction(-3)
					s.AdjustReputation(5)
					return ""
				}},
			{Label: "Turn them away", Outcome: "The refugees trudge on. Neighbors take note.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.AdjustReputation(-5)
					return ""
				}},
		},
	},
	{
		ID:          "plague",
		Title:       "Plague",
		Description: "A fever spreads through the crowded quarters.",
		Category:    realm.CategoryImportant,
		Weight:      1,
		Condition:   "Population >= 30",
		Choices: []Choice{
			{Label: "Pay physicians (150 gold)", Outcome: "The physicians contain the outbreak.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold -= 150
					lost := s.Population.Remove(ceilShare(s.Population.Total, 0.02), realm.StarvationOrder)
					return fmt.Sprintf("The physicians contain the outbreak. %d perished.", lost)
				}},
			{Label: "Let it run its course", Outcome: "The fever burns out.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					lost := s.Population.Remove(ceilShare(s.Population.Total, 0.08), realm.StarvationOrder)
					s.AdjustSatisfaction(-10)
					return fmt.Sprintf("The fever burns out after taking %d lives.", lost)
				}},
		},
	},
	{
		ID:          "mine_collapse",
		Title:       "Mine Collapse",
		Description: "A gallery gave way and miners are trapped below.",
		Category:    realm.CategoryDomestic,
		Weight:      1.5,
		Condition:   "Miners >= 3",
		Choices: []Choice{
			{Label: "Dig them out (80 gold)", Outcome: "Every miner was brought up alive.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold -= 80
					s.AdjustSatisfaction(3)
					return ""
				}},
			{Label: "Seal the shaft", Outcome: "The shaft was sealed with two miners inside.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Population.Remove(2, []realm.Job{realm.Miners})
					s.AdjustSatisfaction(-8)
					return ""
				}},
		},
	},
	{
		ID:          "festival",
		Title:       "Midsummer Festival",
		Description: "The guilds ask the crown to sponsor the midsummer festival.",
		Category:    realm.CategoryDomestic,
		Weight:      2,
		Condition:   "Gold >= 200 && Food >= 50",
		Choices: []Choice{
			{Label: "Sponsor it (150 gold)", Outcome: "The festival lifts everyone's spirits.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold -= 150
					s.AdjustSatisfaction(15)
					return ""
				}},
			{Label: "Not this year", Outcome: "The guilds grumble but accept.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.AdjustSatisfaction(-2)
					return ""
				}},
		},
	},
	{
		ID:          "bandits",
		Title:       "Bandits on the Roads",
		Description: "Bandits are robbing the caravans that feed our markets.",
		Category:    realm.CategoryMilitary,
		Weight:      2,
		Condition:   "Day >= 10 && Soldiers < 10",
		Choices: []Choice{
			{Label: "Pay them to leave (100 gold)", Outcome: "The bandits took the gold and left.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold -= 100
					return ""
				}},
			{Label: "Track them to their lair", Outcome: "Scouts set off after the bandits.",
				Next: "bandit_lair"},
		},
	},
	{
		ID:          "bandit_lair",
		Title:       "The Bandit Lair",
		Description: "The scouts found the bandits camped in a ruined fort.",
		Category:    realm.CategoryMilitary,
		Chained:     true,
		Choices: []Choice{
			{Label: "Storm the fort", Outcome: "The fort was taken.",
				Apply: func(s *realm.State, rng entropy.Source) string {
					if s.Population.Soldiers == 0 || !entropy.Chance(rng, 0.7) {
						s.AdjustMorale(-5)
						return "The assault failed and the bandits escaped."
					}
					loot := 100 + float64(rng.IntN(151))
					s.Resources.Gold += loot
					s.AdjustMorale(5)
					return fmt.Sprintf("The fort was taken along with %.0f gold in stolen goods.", loot)
				}},
			{Label: "Leave them be", Outcome: "The bandits will strike again."},
		},
	},
	{
		ID:          "visiting_scholar",
		Title:       "A Visiting Scholar",
		Description: "A scholar from a far academy offers to share their notes.",
		Category:    realm.CategoryTech,
		Weight:      1.5,
		Condition:   `Gold >= 120 && !Researched("scholarship")`,
		Choices: []Choice{
			{Label: "Host them (120 gold)", Outcome: "Research advances with the scholar's help.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold -= 120
					if len(s.ResearchQueue) == 0 {
						s.Resources.Mana += 20
						return "The scholar left a gift of distilled mana."
					}
					s.ResearchQueue[0].Remaining /= 2
					return ""
				}},
			{Label: "Decline politely", Outcome: "The scholar travels on."},
		},
	},
	{
		ID:          "strange_ore",
		Title:       "Strange Ore",
		Description: "Miners unearthed a vein of ore that glows faintly in the dark.",
		Category:    realm.CategoryTech,
		Weight:      1,
		Condition:   `Built("mine_lv1")`,
		Choices: []Choice{
			{Label: "Study it", Outcome: "Scholars follow the vein deeper.", Next: "ley_line"},
			{Label: "Sell it", Outcome: "A collector paid handsomely for the ore.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold += 150
					return ""
				}},
		},
	},
	{
		ID:          "ley_line",
		Title:       "A Ley Line",
		Description: "The glowing vein follows a ley line beneath the capital.",
		Category:    realm.CategoryTech,
		Chained:     true,
		Choices: []Choice{
			{Label: "Tap the ley line", Outcome: "Raw mana floods the towers.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Mana += 100
					return ""
				}},
			{Label: "Bury it again", Outcome: "The priests bless the sealed vein.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.AdjustSatisfaction(5)
					return ""
				}},
		},
	},
	{
		ID:          "deserters",
		Title:       "Deserters",
		Description: "Several soldiers abandoned their posts overnight.",
		Category:    realm.CategoryMilitary,
		Weight:      1.5,
		Condition:   "Morale < 40 && Soldiers >= 5",
		Choices: []Choice{
			{Label: "Pardon them", Outcome: "The pardon is met with relief.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.AdjustMorale(5)
					return ""
				}},
			{Label: "Make an example", Outcome: "Discipline is restored at a cost.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Population.Remove(2, []realm.Job{realm.Soldiers})
					s.AdjustMorale(10)
					s.AdjustSatisfaction(-5)
					return ""
				}},
		},
	},
	{
		ID:          "drought",
		Title:       "Drought",
		Description: "No rain has fallen for weeks and the wells run low.",
		Category:    realm.CategoryImportant,
		Weight:      1,
		Condition:   "Day >= 60 && Food >= 30",
		Choices: []Choice{
			{Label: "Ration the stores", Outcome: "Rationing saves part of the harvest.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Food = math.Floor(s.Resources.Food * 0.8)
					s.AdjustSatisfaction(-5)
					return ""
				}},
			{Label: "Buy grain abroad (200 gold)", Outcome: "Grain ships arrive in time.",
				Apply: func(s *realm.State, _ entropy.Source) string {
					s.Resources.Gold -= 200
					return ""
				}},
		},
	},
	{
		ID:          "wandering_hero",
		Title:       "A Hero at the Gate",
		Description: "A famed warrior arrives unannounced and offers their sword to our cause.",
		Category:    realm.CategoryMilitary,
		Chance:      HeroOfferChance,
		Condition:   "HeroesAvailable > 0",
		Choices: []Choice{
			{Label: "Offer a commission (first month's pay)", Apply: heroOffer},
			{Label: "Send them on their way", Outcome: "The warrior shrugs and rides off to find another banner."},
		},
	},
}

// HeroOfferChance is the daily chance a wandering hero asks to serve.
const HeroOfferChance = 0.01

// heroOffer picks an unhired hero and enlists them if the treasury can
// pay the first month.
func heroOffer(s *realm.State, rng entropy.Source) string {
	avail := s.AvailableHeroes()
	if len(avail) == 0 {
		return "The stranger finds our halls already full of champions and moves on."
	}
	t := avail[rng.IntN(len(avail))]
	if s.Resources.Gold < t.Salary {
		return fmt.Sprintf("%s will not serve for less than %.0f gold a month, more than we hold.", t.Name, t.Salary)
	}
	s.Resources.Gold -= t.Salary
	s.Heroes = append(s.Heroes, realm.NewHero(t.ID, s.DayNumber(), rng))
	return fmt.Sprintf("%s, %s, swears to fight for us.", t.Name, t.Ability)
}

func ceilShare(n int, share float64) int {
	return max(1, int(math.Ceil(float64(n)*share)))
}
