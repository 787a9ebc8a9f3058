package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onekill0503/dnd-bot/internal/dice"
)

var rollCmd = &cobra.Command{
	Use:   "roll NOTATION...",
	Short: "Roll dice locally, e.g. roll 1d20+5 2d6",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoll,
}

func runRoll(cmd *cobra.Command, args []string) error {
	roller := dice.NewRoller(nil)
	for _, notation := range args {
		roll, err := roller.RollNotation(notation)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), roll.String())
	}
	return nil
}
