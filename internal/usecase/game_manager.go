package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type gameRepo interface {
	Save(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error
	GetBySessionID(ctx context.Context, sessionID string) (*entity.Snapshot, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
	AppendHistory(ctx context.Context, sessionID string, snapshot *entity.Snapshot, limit int64) error
	History(ctx context.Context, sessionID string, limit int64) ([]*entity.Snapshot, error)
}

type statsRepo interface {
	Record(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error
	Get(ctx context.Context, sessionID string) (*entity.Stats, error)
}

type Options struct {
	SessionID   string
	HistorySize int64
}

// GameManager owns the session's game controller. Every operation runs under one lock, so the
// controller sees one call at a time even when the front end serves requests concurrently.
type GameManager struct {
	logger *slog.Logger

	gameRepo  gameRepo
	statsRepo statsRepo
	options   Options

	mu         sync.Mutex
	controller *tictactoe.GameController

	// IDs of the last game counted in stats and appended to history.
	statsGameID   string
	historyGameID string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, statsRepo statsRepo, settings tictactoe.Settings, options Options) (*GameManager, error) {
	controller, err := tictactoe.NewGameController(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create game controller: %w", err)
	}

	return &GameManager{
		logger: logger.With("component", "game_manager", "session", options.SessionID),

		gameRepo:   gameRepo,
		statsRepo:  statsRepo,
		options:    options,
		controller: controller,
	}, nil
}

// Resume - continues the stored game of the session, or stores the fresh one if there is none.
func (that *GameManager) Resume(ctx context.Context) (entity.Snapshot, error) {
	log := that.logger.With("method", "Resume")

	that.mu.Lock()
	defer that.mu.Unlock()

	stored, err := that.gameRepo.GetBySessionID(ctx, that.options.SessionID)
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		log.Info("no stored game, starting a new one")
	case err != nil:
		return that.controller.CurrentState(), fmt.Errorf("failed to get stored game: %w", err)
	default:
		if err = that.controller.Restore(*stored); err == nil {
			log.Info("stored game resumed", "gameID", stored.ID, "phase", stored.Phase)

			// a stored finished game has already been counted
			if stored.IsFinished() {
				that.statsGameID = stored.ID
				that.historyGameID = stored.ID
			}

			return that.controller.CurrentState(), nil
		}

		if !errors.Is(err, apperror.ErrCorruptedState) {
			return that.controller.CurrentState(), fmt.Errorf("failed to restore game: %w", err)
		}

		log.Warn("stored game discarded", "gameID", stored.ID, "error", err)

		if err = that.gameRepo.DeleteBySessionID(ctx, that.options.SessionID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
			return that.controller.CurrentState(), fmt.Errorf("failed to delete corrupted game: %w", err)
		}
	}

	snapshot := that.controller.CurrentState()

	return snapshot, that.save(ctx, &snapshot)
}

func (that *GameManager) State() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.controller.CurrentState()
}

func (that *GameManager) ChooseSymbol(ctx context.Context, mark entity.Mark) (entity.Snapshot, error) {
	return that.apply(ctx, "ChooseSymbol", func(controller *tictactoe.GameController) error {
		return controller.ChooseSymbol(mark)
	})
}

func (that *GameManager) MakeTurn(ctx context.Context, row, col int) (entity.Snapshot, error) {
	return that.apply(ctx, "MakeTurn", func(controller *tictactoe.GameController) error {
		return controller.PlayerMove(row, col)
	})
}

func (that *GameManager) Restart(ctx context.Context) (entity.Snapshot, error) {
	return that.apply(ctx, "Restart", func(controller *tictactoe.GameController) error {
		controller.Restart()
		return nil
	})
}

func (that *GameManager) Stats(ctx context.Context) (*entity.Stats, error) {
	stats, err := that.statsRepo.Get(ctx, that.options.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (that *GameManager) History(ctx context.Context) ([]*entity.Snapshot, error) {
	games, err := that.gameRepo.History(ctx, that.options.SessionID, that.options.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return games, nil
}

// apply - runs op against the controller and persists the result. A rejected operation leaves
// the game untouched and nothing is written. When the save fails the controller is rolled back
// to the stored game.
func (that *GameManager) apply(ctx context.Context, method string, op func(controller *tictactoe.GameController) error) (entity.Snapshot, error) {
	log := that.logger.With("method", method)

	that.mu.Lock()
	defer that.mu.Unlock()

	// a result that failed to be recorded earlier is retried before the game moves on
	if err := that.recordResult(ctx, log); err != nil {
		return that.controller.CurrentState(), err
	}

	before := that.controller.CurrentState()

	if err := op(that.controller); err != nil {
		log.Debug("operation rejected", "error", err)
		return before, err
	}

	snapshot := that.controller.CurrentState()
	if err := that.save(ctx, &snapshot); err != nil {
		if restoreErr := that.controller.Restore(before); restoreErr != nil {
			log.Error("failed to roll back game", "gameID", before.ID, "error", restoreErr)
		}

		return that.controller.CurrentState(), err
	}

	if err := that.recordResult(ctx, log); err != nil {
		return snapshot, err
	}

	return snapshot, nil
}

func (that *GameManager) save(ctx context.Context, snapshot *entity.Snapshot) error {
	if err := that.gameRepo.Save(ctx, that.options.SessionID, snapshot); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// recordResult - counts the current game in stats and history once it is finished. A step that
// already succeeded for this game is not repeated.
func (that *GameManager) recordResult(ctx context.Context, log *slog.Logger) error {
	snapshot := that.controller.CurrentState()
	if !snapshot.IsFinished() {
		return nil
	}

	if that.statsGameID != snapshot.ID {
		if err := that.statsRepo.Record(ctx, that.options.SessionID, &snapshot); err != nil {
			return fmt.Errorf("failed to record result: %w", err)
		}

		that.statsGameID = snapshot.ID
		log.Info("game finished", "gameID", snapshot.ID, "phase", snapshot.Phase, "winner", snapshot.Winner)
	}

	if that.historyGameID != snapshot.ID {
		if err := that.gameRepo.AppendHistory(ctx, that.options.SessionID, &snapshot, that.options.HistorySize); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}

		that.historyGameID = snapshot.ID
	}

	return nil
}
