package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/vanishing-tictactoe/internal/config"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/repository"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/vanishing-tictactoe/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the game on the given terminal streams until the player quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var matchRepo repository.MatchRepository

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		matchRepo = repository.NewMatchRepository(redisStorage)
	}

	session := usecase.NewSession(logger, conf.MatchID, tictactoe.NewMatch(), matchRepo)
	if _, err := session.Resume(ctx); err != nil {
		log.Error("could not resume match, starting fresh", "error", err)
	}

	log.Info("Starting console", "matchID", conf.MatchID, "redis", conf.Redis.Enabled)

	if err := console.New(logger, session).Start(ctx, in, out); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Console closed, shutting down")

	return nil
}
