package domain

// KDA is (kills+assists)/deaths, or kills+assists when deaths is zero.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}

// PlayerStats are a player's running kill/death/assist totals.
type PlayerStats struct {
	Kills   int `json:"kills" gorm:"not null;default:0"`
	Deaths  int `json:"deaths" gorm:"not null;default:0"`
	Assists int `json:"assists" gorm:"not null;default:0"`
}

func (s PlayerStats) KDA() float64 {
	return KDA(s.Kills, s.Deaths, s.Assists)
}

func (s PlayerStats) Add(o PlayerStats) PlayerStats {
	return PlayerStats{
		Kills:   s.Kills + o.Kills,
		Deaths:  s.Deaths + o.Deaths,
		Assists: s.Assists + o.Assists,
	}
}

// Sub subtracts o field by field, flooring each field at zero.
func (s PlayerStats) Sub(o PlayerStats) PlayerStats {
	return PlayerStats{
		Kills:   floorSub(s.Kills, o.Kills),
		Deaths:  floorSub(s.Deaths, o.Deaths),
		Assists: floorSub(s.Assists, o.Assists),
	}
}

func (s PlayerStats) IsZero() bool {
	return s == PlayerStats{}
}

// TeamStats are a team's running series totals. TotalGames == Wins + Losses
// after every committed ledger operation.
type TeamStats struct {
	Wins           int `json:"wins" gorm:"not null;default:0"`
	Losses         int `json:"losses" gorm:"not null;default:0"`
	TotalGames     int `json:"totalGames" gorm:"not null;default:0"`
	PointsScored   int `json:"pointsScored" gorm:"not null;default:0"`
	PointsConceded int `json:"pointsConceded" gorm:"not null;default:0"`
}

func (s TeamStats) Add(o TeamStats) TeamStats {
	return TeamStats{
		Wins:           s.Wins + o.Wins,
		Losses:         s.Losses + o.Losses,
		TotalGames:     s.TotalGames + o.TotalGames,
		PointsScored:   s.PointsScored + o.PointsScored,
		PointsConceded: s.PointsConceded + o.PointsConceded,
	}
}

// Sub subtracts o field by field, flooring each field at zero.
func (s TeamStats) Sub(o TeamStats) TeamStats {
	return TeamStats{
		Wins:           floorSub(s.Wins, o.Wins),
		Losses:         floorSub(s.Losses, o.Losses),
		TotalGames:     floorSub(s.TotalGames, o.TotalGames),
		PointsScored:   floorSub(s.PointsScored, o.PointsScored),
		PointsConceded: floorSub(s.PointsConceded, o.PointsConceded),
	}
}

func floorSub(a, b int) int {
	if a-b < 0 {
		return 0
	}
	return a - b
}
