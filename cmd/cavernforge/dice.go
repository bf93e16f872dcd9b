package main

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

var rolls int

var diceCmd = &cobra.Command{
	Use:   "dice <expr>",
	Short: "Roll a dice expression such as 2d4+1",
	Long: `Roll a dice expression the way count settings (num_treasures, num_mimics...)
are evaluated, and print its possible range.`,
	Args: cobra.ExactArgs(1),
	RunE: runDice,
}

func init() {
	diceCmd.Flags().IntVarP(&rolls, "rolls", "n", 1, "Number of times to roll")
}

func runDice(cmd *cobra.Command, args []string) error {
	expr := args[0]
	lo, hi, err := stats.DiceRange(expr)
	if err != nil {
		return err
	}

	d := stats.NewDice(dice.DefaultRoller)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d..%d\n", expr, lo, hi)
	for i := 0; i < rolls; i++ {
		v, err := d.Eval(expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
	}
	return nil
}
