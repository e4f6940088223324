package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	State() entity.Snapshot
	ChooseSymbol(ctx context.Context, mark entity.Mark) (entity.Snapshot, error)
	MakeTurn(ctx context.Context, row, col int) (entity.Snapshot, error)
	Restart(ctx context.Context) (entity.Snapshot, error)
	Stats(ctx context.Context) (*entity.Stats, error)
	History(ctx context.Context) ([]*entity.Snapshot, error)
}

type Server struct {
	logger  *slog.Logger
	manager gameManager
	engine  *gin.Engine
}

func New(logger *slog.Logger, manager gameManager) (*Server, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	that := &Server{
		logger:  logger.With("component", "rest"),
		manager: manager,
		engine:  gin.New(),
	}

	that.engine.Use(gin.Recovery(), that.requestLogger())

	that.engine.GET("/ping", that.ping)

	game := that.engine.Group("/game")
	game.GET("", that.getGame)
	game.POST("/symbol", that.chooseSymbol)
	game.POST("/move", that.makeMove)
	game.POST("/restart", that.restart)

	that.engine.GET("/stats", that.stats)
	that.engine.GET("/history", that.history)

	return that, nil
}

func (that *Server) Engine() *gin.Engine {
	return that.engine
}

// Start - serves HTTP on port until ctx is canceled, then shuts the server down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func (that *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		that.logger.Debug("request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
