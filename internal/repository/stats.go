package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrUnfinishedGame = errors.New("game is not finished")

const (
	fieldHumanWins = "human_wins"
	fieldAIWins    = "ai_wins"
	fieldDraws     = "draws"
)

// StatsRepository counts finished games per session.
type StatsRepository interface {
	Record(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error
	Get(ctx context.Context, sessionID string) (*entity.Stats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func statsKey(sessionID string) string {
	return "stats:" + sessionID
}

// resultField - the counter a finished game increments.
func resultField(snapshot *entity.Snapshot) (string, error) {
	switch {
	case snapshot.HumanWon():
		return fieldHumanWins, nil
	case snapshot.AIWon():
		return fieldAIWins, nil
	case snapshot.Phase == entity.PhaseDraw:
		return fieldDraws, nil
	default:
		return "", fmt.Errorf("%w: phase %s", ErrUnfinishedGame, snapshot.Phase)
	}
}

func (that *dbStats) Record(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error {
	field, err := resultField(snapshot)
	if err != nil {
		return err
	}

	if err = that.client.HIncrBy(ctx, statsKey(sessionID), field, 1).Err(); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *dbStats) Get(ctx context.Context, sessionID string) (*entity.Stats, error) {
	response, err := that.client.HGetAll(ctx, statsKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	stats := &entity.Stats{}
	for field, target := range map[string]*int64{
		fieldHumanWins: &stats.HumanWins,
		fieldAIWins:    &stats.AIWins,
		fieldDraws:     &stats.Draws,
	} {
		value, ok := response[field]
		if !ok {
			continue
		}

		if *target, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field, err)
		}
	}

	return stats, nil
}
