package domain

// ResolveWinner counts map wins per side (a drawn map counts for neither), sets
// the series score and the winner. A series with equal map wins is rejected
// instead of being awarded to either side.
func ResolveWinner(m *Match) error {
	var team1Wins, team2Wins int
	for _, mr := range m.Maps {
		switch {
		case mr.Team1Score > mr.Team2Score:
			team1Wins++
		case mr.Team2Score > mr.Team1Score:
			team2Wins++
		}
	}

	if team1Wins == team2Wins {
		return ErrDrawnSeries
	}

	m.Scores = SeriesScore{Team1Score: team1Wins, Team2Score: team2Wins}
	if team1Wins > team2Wins {
		m.WinnerID = m.Team1ID
	} else {
		m.WinnerID = m.Team2ID
	}
	return nil
}
