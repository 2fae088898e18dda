package domain

type TeamTotals struct {
	Red   int
	Black int
}

type PlayerNetScore struct {
	PlayerID   string
	PlayerName string
	Team       TeamAssignment
	NetScore   int
	Matches    int
}

type SessionResults struct {
	Session Session
	Totals  TeamTotals
	// Players is sorted by net score descending, then name.
	Players []PlayerNetScore
}

type PlayerSeasonAggregate struct {
	PlayerID         string
	PlayerName       string
	SessionsAttended int
	Matches          int
	TotalNetScore    int
	AverageNetScore  float64
}
