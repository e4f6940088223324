package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// memoryGame keeps games in process memory when redis is disabled.
type memoryGame struct {
	mu       sync.Mutex
	sessions map[string]entity.Snapshot
	history  map[string][]entity.Snapshot
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		sessions: make(map[string]entity.Snapshot),
		history:  make(map[string][]entity.Snapshot),
	}
}

func (that *memoryGame) Save(_ context.Context, sessionID string, snapshot *entity.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[sessionID] = cloneSnapshot(snapshot)

	return nil
}

func (that *memoryGame) GetBySessionID(_ context.Context, sessionID string) (*entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot, ok := that.sessions[sessionID]
	if !ok {
		return nil, ErrGameNotFound
	}

	clone := cloneSnapshot(&snapshot)

	return &clone, nil
}

func (that *memoryGame) DeleteBySessionID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[sessionID]; !ok {
		return ErrGameNotFound
	}

	delete(that.sessions, sessionID)

	return nil
}

func (that *memoryGame) AppendHistory(_ context.Context, sessionID string, snapshot *entity.Snapshot, limit int64) error {
	if limit <= 0 {
		return nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	games := append([]entity.Snapshot{cloneSnapshot(snapshot)}, that.history[sessionID]...)
	if int64(len(games)) > limit {
		games = games[:limit]
	}
	that.history[sessionID] = games

	return nil
}

func (that *memoryGame) History(_ context.Context, sessionID string, limit int64) ([]*entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := that.history[sessionID]
	if int64(len(stored)) > limit {
		stored = stored[:max(limit, 0)]
	}

	games := make([]*entity.Snapshot, 0, len(stored))
	for i := range stored {
		clone := cloneSnapshot(&stored[i])
		games = append(games, &clone)
	}

	return games, nil
}

func cloneSnapshot(snapshot *entity.Snapshot) entity.Snapshot {
	clone := *snapshot
	if snapshot.LastAIMove != nil {
		lastAIMove := *snapshot.LastAIMove
		clone.LastAIMove = &lastAIMove
	}
	return clone
}

type memoryStats struct {
	mu    sync.Mutex
	stats map[string]entity.Stats
}

func NewMemoryStatsRepository() StatsRepository {
	return &memoryStats{
		stats: make(map[string]entity.Stats),
	}
}

func (that *memoryStats) Record(_ context.Context, sessionID string, snapshot *entity.Snapshot) error {
	field, err := resultField(snapshot)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	stats := that.stats[sessionID]
	switch field {
	case fieldHumanWins:
		stats.HumanWins++
	case fieldAIWins:
		stats.AIWins++
	case fieldDraws:
		stats.Draws++
	}
	that.stats[sessionID] = stats

	return nil
}

func (that *memoryStats) Get(_ context.Context, sessionID string) (*entity.Stats, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stats := that.stats[sessionID]

	return &stats, nil
}
