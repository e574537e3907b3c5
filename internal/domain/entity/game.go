package entity

// Score and status placeholders used when a provider omits a value.
// Scores stay text because providers report non-numeric placeholders for
// unstarted or postponed games; no arithmetic is ever performed on them.
const (
	ScorePlaceholder  = "-"
	StatusPlaceholder = "TBD"
)

// GameScore represents one normalized scoreboard entry.
type GameScore struct {
	HomeTeam  string
	AwayTeam  string
	HomeScore string
	AwayScore string
	Status    string
}

// NewGameScore returns a GameScore with placeholder defaults applied to
// every empty field.
func NewGameScore(home, away, homeScore, awayScore, status string) GameScore {
	g := GameScore{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Status:    status,
	}
	if g.HomeScore == "" {
		g.HomeScore = ScorePlaceholder
	}
	if g.AwayScore == "" {
		g.AwayScore = ScorePlaceholder
	}
	if g.Status == "" {
		g.Status = StatusPlaceholder
	}
	return g
}
