package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/vanishing-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/entity"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/repository"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/tictactoe"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// Session owns the match being played by this process and mirrors it to matchRepo when one is set.
// The in-memory match is authoritative: storage failures are reported but never undo a move.
type Session struct {
	logger *slog.Logger

	id        string
	match     *tictactoe.Match
	matchRepo matchRepo
}

// NewSession wires a session. matchRepo may be nil to keep the match in memory only.
func NewSession(logger *slog.Logger, id string, match *tictactoe.Match, matchRepo matchRepo) *Session {
	return &Session{
		logger: logger.With("component", "session", "matchID", id),

		id:        id,
		match:     match,
		matchRepo: matchRepo,
	}
}

// Resume loads the stored snapshot, if any. A snapshot that fails validation is discarded.
func (that *Session) Resume(ctx context.Context) (*entity.Snapshot, error) {
	log := that.logger.With("method", "Resume")

	if that.matchRepo == nil {
		return that.State(), nil
	}

	snapshot, err := that.matchRepo.GetByID(ctx, that.id)
	if errors.Is(err, repository.ErrMatchNotFound) {
		log.Debug("no stored match, starting fresh")
		return that.State(), nil
	}

	if err != nil {
		return that.State(), fmt.Errorf("failed to load match: %w", err)
	}

	if err = that.match.Restore(snapshot); err != nil {
		log.Warn("discarding stored match", "error", err)
		that.deleteSnapshot(ctx)

		return that.State(), nil
	}

	log.Info("match resumed", "turn", that.match.Turn(), "status", that.match.Outcome().Status)

	return that.State(), nil
}

// MoveAt plays the current player's mark at (row, col). A rejected move returns the reason and changes nothing.
func (that *Session) MoveAt(ctx context.Context, row, col int) (*entity.Snapshot, error) {
	log := that.logger.With("method", "MoveAt")

	if err := that.match.CheckMove(row, col); err != nil {
		log.Debug("move rejected", "row", row, "col", col, "reason", err)
		return that.State(), err
	}

	mark := that.match.Turn()
	that.match.AttemptMove(row, col)

	log.Info("move accepted", "mark", mark, "row", row, "col", col)

	outcome := that.match.Outcome()
	if outcome.IsFinished() {
		log.Info("match finished", "status", outcome.Status, "winner", outcome.Winner)
		that.deleteSnapshot(ctx)

		return that.State(), nil
	}

	if err := that.saveSnapshot(ctx); err != nil {
		return that.State(), err
	}

	return that.State(), nil
}

// MoveAtIndex plays at keypad index 1..9.
func (that *Session) MoveAtIndex(ctx context.Context, index int) (*entity.Snapshot, error) {
	coord, ok := entity.CoordFromIndex(index)
	if !ok {
		return that.State(), fmt.Errorf("%w: index %d", apperror.ErrInvalidCell, index)
	}

	return that.MoveAt(ctx, coord.Row, coord.Col)
}

// Restart starts a new match and drops any stored snapshot.
func (that *Session) Restart(ctx context.Context) *entity.Snapshot {
	that.match.Restart()
	that.logger.Info("match restarted")

	that.deleteSnapshot(ctx)

	return that.State()
}

func (that *Session) State() *entity.Snapshot {
	return that.match.Snapshot(that.id)
}

func (that *Session) saveSnapshot(ctx context.Context) error {
	if that.matchRepo == nil {
		return nil
	}

	if err := that.matchRepo.CreateOrUpdate(ctx, that.State()); err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (that *Session) deleteSnapshot(ctx context.Context) {
	if that.matchRepo == nil {
		return
	}

	log := that.logger.With("method", "deleteSnapshot")

	err := that.matchRepo.DeleteByID(ctx, that.id)
	if err != nil && !errors.Is(err, repository.ErrMatchNotFound) {
		log.Error("failed to delete match", "error", err)
	}
}
