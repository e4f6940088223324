package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

// GameRepository keeps the running game of a session and the games it has finished.
type GameRepository interface {
	Save(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error
	GetBySessionID(ctx context.Context, sessionID string) (*entity.Snapshot, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error

	// AppendHistory stores a finished game, keeping at most limit of the newest ones.
	AppendHistory(ctx context.Context, sessionID string, snapshot *entity.Snapshot, limit int64) error
	History(ctx context.Context, sessionID string, limit int64) ([]*entity.Snapshot, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func historyKey(sessionID string) string {
	return "history:" + sessionID
}

func (that *dbGame) Save(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error {
	gameJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, sessionKey(sessionID), gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetBySessionID(ctx context.Context, sessionID string) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, sessionKey(sessionID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by session id: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &snapshot, nil
}

func (that *dbGame) DeleteBySessionID(ctx context.Context, sessionID string) error {
	deleted, err := that.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by session id: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}

func (that *dbGame) AppendHistory(ctx context.Context, sessionID string, snapshot *entity.Snapshot, limit int64) error {
	if limit <= 0 {
		return nil
	}

	gameJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	key := historyKey(sessionID)

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, gameJSON)
		pipe.LTrim(ctx, key, 0, limit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append game to history: %w", err)
	}

	return nil
}

func (that *dbGame) History(ctx context.Context, sessionID string, limit int64) ([]*entity.Snapshot, error) {
	if limit <= 0 {
		return []*entity.Snapshot{}, nil
	}

	response, err := that.client.LRange(ctx, historyKey(sessionID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	games := make([]*entity.Snapshot, 0, len(response))
	for _, item := range response {
		var snapshot entity.Snapshot
		if err = json.Unmarshal([]byte(item), &snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}
		games = append(games, &snapshot)
	}

	return games, nil
}
