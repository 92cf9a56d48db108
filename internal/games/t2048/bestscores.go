package t2048

import "sync"

// MemoryBestScores keeps best scores in memory. It is the fallback when no
// database is available.
type MemoryBestScores struct {
	mu     sync.RWMutex
	scores map[string]int
}

// NewMemoryBestScores creates an empty in-memory store.
func NewMemoryBestScores() *MemoryBestScores {
	return &MemoryBestScores{scores: make(map[string]int)}
}

// BestScore returns the best score for gameID, or 0.
func (s *MemoryBestScores) BestScore(gameID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores[gameID], nil
}

// SetBestScore raises the best score for gameID. Lower scores are ignored.
func (s *MemoryBestScores) SetBestScore(gameID string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score > s.scores[gameID] {
		s.scores[gameID] = score
	}
	return nil
}
