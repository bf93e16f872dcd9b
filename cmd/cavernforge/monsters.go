package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/leveling"
)

var (
	monsterFilter string
	forLevel      int
)

var monstersCmd = &cobra.Command{
	Use:   "monsters",
	Short: "List catalog monsters matching a keyword filter",
	Long: `List the monsters a floor could draw from. The filter is the same keyword
expression used by the monster_filter config setting, e.g. "undead & !incorporeal".`,
	RunE: runMonsters,
}

func init() {
	monstersCmd.Flags().StringVar(&monsterFilter, "filter", "", "Keyword expression (empty matches everything)")
	monstersCmd.Flags().IntVar(&forLevel, "level", 0, "Only monsters fit for an encounter at this character level")
}

func runMonsters(cmd *cobra.Command, args []string) error {
	_, cat, err := loadInputs()
	if err != nil {
		return err
	}

	var cr *catalog.CRRange
	if forLevel > 0 {
		cr = &catalog.CRRange{Min: 0, Max: leveling.MaxEncounterCR(forLevel)}
	}
	infos, err := cat.Monsters.GetMonsterInfos(monsterFilter, cr)
	if err != nil {
		return err
	}
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].ChallengeRating != infos[j].ChallengeRating {
			return infos[i].ChallengeRating < infos[j].ChallengeRating
		}
		return infos[i].Name < infos[j].Name
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHAR\tCR\tXP\tSIZE\tMAX/FLOOR")
	for _, m := range infos {
		rating := "-"
		if m.Rated {
			rating = catalog.FormatCR(m.ChallengeRating)
		}
		limit := "-"
		if m.Capped() {
			limit = fmt.Sprint(m.MaxPerFloor)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", m.Name, m.AsciiChar, rating, m.XP, m.Size, limit)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d monster(s)\n", len(infos))
	return nil
}
