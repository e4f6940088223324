package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/cli"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
)

var ErrUnknownInterface = errors.New("unknown interface")

type repositories struct {
	game  repository.GameRepository
	stats repository.StatsRepository
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	repos, closeStorage, err := initRepositories(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	settings := tictactoe.Settings{
		ChooseSymbol: conf.Game.ChooseSymbol,
		HumanMark:    entity.Mark(conf.Game.HumanMark),
	}

	gameManager, err := usecase.NewGameManager(logger, repos.game, repos.stats, settings, usecase.Options{
		SessionID:   conf.Game.SessionID,
		HistorySize: conf.Game.HistorySize,
	})
	if err != nil {
		return fmt.Errorf("could not create game manager: %w", err)
	}

	if _, err = gameManager.Resume(ctx); err != nil {
		return fmt.Errorf("could not resume game: %w", err)
	}

	switch conf.Interface {
	case config.InterfaceHTTP:
		server, serverErr := rest.New(logger, gameManager)
		if serverErr != nil {
			return fmt.Errorf("could not create HTTP server: %w", serverErr)
		}

		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err = server.Start(ctx, conf.HTTPPort); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	case config.InterfaceCLI:
		terminal := cli.New(logger, gameManager, os.Stdin, termenv.NewOutput(os.Stdout))
		if err = terminal.Run(ctx); err != nil {
			return fmt.Errorf("terminal error: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInterface, conf.Interface)
	}

	log.Info("Application stopped")

	return nil
}

// initRepositories - redis backed repositories when redis is enabled, in-memory ones otherwise.
func initRepositories(ctx context.Context, log *slog.Logger, conf *config.Config) (repositories, func(), error) {
	if !conf.Redis.Enabled {
		log.Info("Redis is disabled, games are kept in memory")

		return repositories{
			game:  repository.NewMemoryGameRepository(),
			stats: repository.NewMemoryStatsRepository(),
		}, func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return repositories{}, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repositories{
		game:  repository.NewGameRepository(redisStorage),
		stats: repository.NewStatsRepository(redisStorage),
	}, closeStorage, nil
}
