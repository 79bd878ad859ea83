package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetFirst bool

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Recompute team and player aggregates from match history",
	Args:  cobra.NoArgs,
	RunE:  runRebuild,
}

func init() {
	rebuildCmd.Flags().BoolVar(&resetFirst, "reset-players", false, "zero every player's stats before rebuilding")
}

func runRebuild(cmd *cobra.Command, args []string) error {
	services, err := openServices()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if resetFirst {
		n, err := services.Ledger.ResetPlayerStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset player stats: %w", err)
		}
		fmt.Fprintf(out, "reset %d players\n", n)
	}

	result, err := services.Ledger.RebuildAggregates(cmd.Context())
	if err != nil {
		return fmt.Errorf("rebuild aggregates: %w", err)
	}
	fmt.Fprintf(out, "replayed %d matches\n", result.Matches)
	fmt.Fprintf(out, "teams:   %d checked, %d repaired\n", result.TeamsChecked, result.TeamsRepaired)
	fmt.Fprintf(out, "players: %d checked, %d repaired\n", result.PlayersChecked, result.PlayersRepaired)
	return nil
}
