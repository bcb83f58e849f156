package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/engine"
	"github.com/talgya/axinode/internal/persistence"
	"github.com/talgya/axinode/internal/realm"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func statusCmd() *cobra.Command {
	var slot string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved game in a slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			s, found, err := st.LoadGame(slot)
			if err != nil {
				return err
			}
			if !found {
				warnColor.Printf("No game in slot %q.\n", slot)
				return nil
			}
			printStatus(&s)
			printRecentLog(st, slot)
			return nil
		},
	}
	cmd.Flags().StringVar(&slot, "slot", envOrDefault("AXINODE_SLOT", "main"), "Save slot")
	return cmd
}

func printStatus(s *realm.State) {
	titleColor.Printf("\nDay %d\n", s.DayNumber())
	fmt.Println(engine.Summary(s))

	r := s.Resources
	goldColor := successColor
	if r.Gold < 0 {
		goldColor = errorColor
	}
	goldColor.Printf("Gold %s", humanize.Comma(int64(r.Gold)))
	fmt.Printf("  Food %s  Ore %s  Mana %s  Weapons %s  Armor %s\n",
		humanize.Comma(int64(r.Food)), humanize.Comma(int64(r.Ore)), humanize.Comma(int64(r.Mana)),
		humanize.Comma(int64(r.Weapons)), humanize.Comma(int64(r.Armor)))

	p := s.Population
	fmt.Printf("Population %s: %d farmers, %d miners, %d craftsmen, %d soldiers, %d unemployed\n",
		humanize.Comma(int64(p.Total)), p.Farmers, p.Miners, p.Craftsmen, p.Soldiers, p.Unemployed)
	fmt.Printf("Tax %.0f%%  Reputation %d  Morale %d  Equipment %d%%\n",
		s.TaxRate*100, s.Reputation, s.Military.Morale, s.Military.EquipmentRate)

	if len(s.Nations) == 0 {
		return
	}
	fmt.Println()
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Nation", "Personality", "Population", "Military", "Economy", "Relation", "Treaties", "Status"}),
	)
	for _, n := range s.Nations {
		status := "peace"
		switch {
		case n.Defeated:
			status = "defeated"
		case n.AtWar:
			status = "war"
		}
		treaties := ""
		for i, t := range n.Treaties {
			if i > 0 {
				treaties += ", "
			}
			treaties += fmt.Sprintf("%s (%dm)", t.Type, t.Duration)
		}
		_ = table.Append([]string{
			n.Name,
			string(n.Personality),
			humanize.Comma(int64(n.Population)),
			humanize.Comma(int64(n.MilitaryPower)),
			humanize.Comma(int64(n.EconomicPower)),
			strconv.FormatFloat(n.Relation, 'f', 0, 64),
			treaties,
			status,
		})
	}
	_ = table.Render()
}

func printRecentLog(st *persistence.Store, slot string) {
	entries, err := st.RecentLog(slot, 10)
	if err != nil || len(entries) == 0 {
		return
	}
	titleColor.Println("\nChronicle")
	for _, e := range entries {
		line := fmt.Sprintf("  day %d %s  %s", e.Day, e.Time, e.Message)
		switch e.Priority {
		case realm.PriorityCritical:
			errorColor.Println(line)
		case realm.PriorityHigh:
			warnColor.Println(line)
		default:
			fmt.Println(line)
		}
	}
}

func savesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			saves, err := st.ListSaves()
			if err != nil {
				return err
			}
			if len(saves) == 0 {
				warnColor.Println("No saved games.")
				return nil
			}
			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Slot", "Day", "Version", "Size", "Saved", "Checksum"}),
			)
			for _, sv := range saves {
				saved := sv.SavedAt
				if t, err := time.Parse(time.RFC3339, sv.SavedAt); err == nil {
					saved = humanize.Time(t)
				}
				_ = table.Append([]string{
					sv.Slot,
					strconv.Itoa(sv.Day),
					strconv.Itoa(sv.Version),
					humanize.Bytes(uint64(sv.Size)),
					saved,
					sv.Checksum[:min(12, len(sv.Checksum))],
				})
			}
			return table.Render()
		},
	}
}

func prestigeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prestige",
		Short: "Show the prestige record and available upgrades",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := st.LoadPrestige()
			if err != nil {
				return err
			}
			printPrestige(p)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "buy <upgrade>",
		Short: "Spend prestige points on an upgrade for future games",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := st.LoadPrestige()
			if err != nil {
				return err
			}
			if err := p.Buy(args[0]); err != nil {
				return err
			}
			if err := st.SavePrestige(p); err != nil {
				return err
			}
			successColor.Printf("Bought %s. %d points left.\n", args[0], p.Points)
			return nil
		},
	})
	return cmd
}

func printPrestige(p realm.Prestige) {
	titleColor.Println("\nPrestige")
	fmt.Printf("Points %d  Victories %d  Days played %s\n",
		p.Points, p.ClearCount, humanize.Comma(int64(p.Playtime)))

	owned := make(map[string]bool, len(p.Upgrades))
	for _, id := range p.Upgrades {
		owned[id] = true
	}
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Upgrade", "Cost", "Effect", "Owned"}),
	)
	for _, u := range catalog.Upgrades {
		mark := ""
		if owned[u.ID] {
			mark = "yes"
		}
		_ = table.Append([]string{u.ID, strconv.Itoa(u.Cost), u.Description, mark})
	}
	_ = table.Render()
}

func printOutcome(o engine.Outcome, p realm.Prestige) {
	if o.Victory {
		successColor.Printf("\nVictory (%s) on day %d.\n", o.Kind, o.Day)
	} else {
		errorColor.Printf("\nDefeat (%s) on day %d.\n", o.Kind, o.Day)
	}
	fmt.Printf("Earned %d prestige; %d points available.\n", o.Prestige, p.Points)
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "catalog [buildings|technologies|specialists|heroes|spells]",
		Short:     "List what can be built, researched, hired or cast",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"buildings", "technologies", "specialists", "heroes", "spells"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				header []string
				rows   [][]string
			)
			switch args[0] {
			case "buildings":
				header = []string{"ID", "Name", "Tier", "Cost", "Effect", "Requires"}
				for _, b := range catalog.Buildings {
					rows = append(rows, []string{b.ID, b.Name, strconv.Itoa(b.Tier), costString(b.Cost), effectString(b.Effect), fmt.Sprint(b.Prerequisites)})
				}
			case "technologies":
				header = []string{"ID", "Name", "Tier", "Category", "Cost", "Effect", "Requires"}
				for _, t := range catalog.Technologies {
					rows = append(rows, []string{t.ID, t.Name, strconv.Itoa(t.Tier), string(t.Category), costString(t.Cost), effectString(t.Effect), fmt.Sprint(t.Prerequisites)})
				}
			case "specialists":
				header = []string{"ID", "Name", "Kind", "Bonus", "Salary"}
				for _, s := range catalog.Specialists {
					rows = append(rows, []string{s.ID, s.Name, s.Kind, effectString(s.Bonus), humanize.Ftoa(s.Salary)})
				}
			case "heroes":
				header = []string{"ID", "Name", "Ability", "Effect", "Salary", "Mana/day", "Power"}
				for _, h := range catalog.Heroes {
					rows = append(rows, []string{h.ID, h.Name, h.Ability, effectString(h.Effect), humanize.Ftoa(h.Salary), humanize.Ftoa(h.ManaCost), strconv.Itoa(h.CombatPower)})
				}
			case "spells":
				header = []string{"ID", "Name", "Mana", "Effect", "Days", "Requires"}
				for _, s := range catalog.Spells {
					rows = append(rows, []string{s.ID, s.Name, humanize.Ftoa(s.ManaCost), effectString(s.Effect), humanize.Ftoa(s.DurationDays), s.Requires})
				}
			default:
				return fmt.Errorf("unknown catalog %q", args[0])
			}

			table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader(header))
			for _, r := range rows {
				_ = table.Append(r)
			}
			return table.Render()
		},
	}
}

func costString(c catalog.Cost) string {
	s := humanize.Ftoa(c.Gold) + "g"
	if c.Ore > 0 {
		s += " " + humanize.Ftoa(c.Ore) + "o"
	}
	if c.Mana > 0 {
		s += " " + humanize.Ftoa(c.Mana) + "m"
	}
	return s
}

func effectString(e catalog.Effect) string {
	return fmt.Sprintf("%s %s", e.Type, humanize.Ftoa(e.Value))
}
