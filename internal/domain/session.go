package domain

// CurrentSession picks the session with the highest (season number, session
// number). The second result is false when there are no sessions.
func CurrentSession(sessions []Session) (Session, bool) {
	var (
		current Session
		found   bool
	)
	for _, s := range sessions {
		if !found || s.SeasonNumber > current.SeasonNumber ||
			(s.SeasonNumber == current.SeasonNumber && s.Number > current.Number) {
			current = s
			found = true
		}
	}
	return current, found
}

// CanAddSeason reports whether every existing season is completed.
func CanAddSeason(seasons []Season) bool {
	for _, s := range seasons {
		if !s.IsCompleted {
			return false
		}
	}
	return true
}

// NextSeasonNumber returns max+1, or first when there are no seasons.
func NextSeasonNumber(seasons []Season, first int) int {
	next := first
	for _, s := range seasons {
		if s.Number >= next {
			next = s.Number + 1
		}
	}
	return next
}
