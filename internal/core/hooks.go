package core

// BestScoreStore persists a single best-score integer per game ID.
// Implementations must never lower a stored value.
type BestScoreStore interface {
	BestScore(gameID string) (int, error)
	SetBestScore(gameID string, score int) error
}

// BestScoreUser is implemented by games that keep a persistent best score.
// The platform hands its store over before the first Reset.
type BestScoreUser interface {
	UseBestScores(store BestScoreStore)
}

// Resizer is implemented by games that can follow a terminal resize
// without restarting. Other games are reset on resize.
type Resizer interface {
	Resize(width, height int)
}
