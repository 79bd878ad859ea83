package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dom/esports-stats-ledger/internal/analytics"
	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var teamsBoard bool

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the player (or team) leaderboard",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().BoolVar(&teamsBoard, "teams", false, "rank teams by wins instead of players by KDA")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	services, err := openServices()
	if err != nil {
		return err
	}

	if teamsBoard {
		teams, err := services.Comparison.TeamLeaderboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("team leaderboard: %w", err)
		}
		printTeams(cmd.OutOrStdout(), teams)
		return nil
	}

	players, err := services.Comparison.PlayerLeaderboard(cmd.Context())
	if err != nil {
		return fmt.Errorf("player leaderboard: %w", err)
	}
	printPlayers(cmd.OutOrStdout(), players)
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

func printPlayers(w io.Writer, players []analytics.PlayerScore) {
	table := newTable(w)
	table.Header("#", "PLAYER", "K", "D", "A", "KDA")
	for i, p := range players {
		table.Append(
			strconv.Itoa(i+1),
			p.Name,
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			strconv.Itoa(p.Assists),
			fmt.Sprintf("%.2f", p.KDA),
		)
	}
	table.Render()
}

func printTeams(w io.Writer, teams []*domain.Team) {
	table := newTable(w)
	table.Header("#", "TEAM", "W", "L", "GAMES", "PTS+", "PTS-")
	for i, t := range teams {
		table.Append(
			strconv.Itoa(i+1),
			t.Name,
			strconv.Itoa(t.Stats.Wins),
			strconv.Itoa(t.Stats.Losses),
			strconv.Itoa(t.Stats.TotalGames),
			strconv.Itoa(t.Stats.PointsScored),
			strconv.Itoa(t.Stats.PointsConceded),
		)
	}
	table.Render()
}
