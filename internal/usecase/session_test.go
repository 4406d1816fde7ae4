package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/vanishing-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/entity"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/repository"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockMatchRepo struct {
	mock.Mock
}

func (that *mockMatchRepo) CreateOrUpdate(ctx context.Context, snapshot *entity.Snapshot) error {
	args := that.Called(ctx, snapshot)
	return args.Error(0)
}

func (that *mockMatchRepo) GetByID(ctx context.Context, id string) (*entity.Snapshot, error) {
	args := that.Called(ctx, id)

	snapshot, _ := args.Get(0).(*entity.Snapshot)

	return snapshot, args.Error(1)
}

func (that *mockMatchRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newMockMatchRepo(t *testing.T) *mockMatchRepo {
	t.Helper()

	repo := &mockMatchRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return repo
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestSession_MoveAt(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves the match after an accepted move", func(t *testing.T) {
		// Given: a session backed by a repository
		repo := newMockMatchRepo(t)
		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		repo.On("CreateOrUpdate", mock.Anything, mock.MatchedBy(func(s *entity.Snapshot) bool {
			return s.ID == "local" && s.Board[1][1] == entity.PlayerX && s.Turn == entity.PlayerO
		})).Return(nil).Once()

		// When: X plays the centre
		state, err := session.MoveAt(ctx, 1, 1)

		// Then: the move is applied and stored
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, state.Board[1][1])
	})

	t.Run("Rejected move returns the reason and skips storage", func(t *testing.T) {
		// Given: a session where X holds the centre
		repo := newMockMatchRepo(t)
		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(nil).Once()
		_, err := session.MoveAt(ctx, 1, 1)
		require.NoError(t, err)

		// When: O tries the same cell and then a cell off the board
		_, occupiedErr := session.MoveAt(ctx, 1, 1)
		_, boundsErr := session.MoveAt(ctx, 3, 3)

		// Then: both are refused and it is still O's turn
		require.ErrorIs(t, occupiedErr, apperror.ErrCellOccupied)
		require.ErrorIs(t, boundsErr, apperror.ErrInvalidCell)
		assert.Equal(t, entity.PlayerO, session.State().Turn)
	})

	t.Run("Storage failure keeps the move", func(t *testing.T) {
		repo := newMockMatchRepo(t)
		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		state, err := session.MoveAt(ctx, 0, 0)

		require.ErrorIs(t, err, errRedisDown)
		assert.Equal(t, entity.PlayerX, state.Board[0][0])
		assert.Equal(t, entity.PlayerO, state.Turn)
	})

	t.Run("Finished match is deleted instead of saved", func(t *testing.T) {
		// Given: X is one move from completing the top row
		repo := newMockMatchRepo(t)
		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(nil).Times(4)
		for _, index := range []int{1, 5, 2, 9} {
			_, err := session.MoveAtIndex(ctx, index)
			require.NoError(t, err)
		}

		repo.On("DeleteByID", mock.Anything, "local").Return(nil).Once()

		// When: X plays the winning move
		state, err := session.MoveAtIndex(ctx, 3)

		// Then: X has won and the stored match is removed
		require.NoError(t, err)
		assert.Equal(t, entity.Won(entity.PlayerX), state.Outcome)

		// Then: further moves are refused
		_, err = session.MoveAtIndex(ctx, 4)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Works without a repository", func(t *testing.T) {
		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), nil)

		state, err := session.MoveAtIndex(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, state.Board[1][1])
	})
}

func TestSession_MoveAtIndex(t *testing.T) {
	session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), nil)

	_, err := session.MoveAtIndex(context.Background(), 0)
	require.ErrorIs(t, err, apperror.ErrInvalidCell)

	_, err = session.MoveAtIndex(context.Background(), 10)
	require.ErrorIs(t, err, apperror.ErrInvalidCell)

	assert.Equal(t, entity.PlayerX, session.State().Turn)
}

func TestSession_Restart(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears the match and the stored snapshot", func(t *testing.T) {
		// Given: a session with a move played
		repo := newMockMatchRepo(t)
		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(nil).Once()
		_, err := session.MoveAt(ctx, 2, 2)
		require.NoError(t, err)

		repo.On("DeleteByID", mock.Anything, "local").Return(nil).Once()

		// When: the session restarts
		state := session.Restart(ctx)

		// Then: the board is empty and X is to move
		assert.Equal(t, tictactoe.NewMatch().Snapshot("local"), state)
	})

	t.Run("Missing snapshot is not an error", func(t *testing.T) {
		repo := newMockMatchRepo(t)
		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		repo.On("DeleteByID", mock.Anything, "local").Return(repository.ErrMatchNotFound).Once()

		state := session.Restart(ctx)

		assert.True(t, state.Outcome.IsOngoing())
	})
}

func TestSession_Resume(t *testing.T) {
	ctx := context.Background()

	t.Run("Restores a stored match", func(t *testing.T) {
		// Given: a stored match with three moves
		stored := tictactoe.NewMatch()
		for _, index := range []int{1, 5, 9} {
			require.True(t, stored.AttemptMoveAtBoardIndex(index))
		}

		repo := newMockMatchRepo(t)
		repo.On("GetByID", mock.Anything, "local").Return(stored.Snapshot("local"), nil).Once()

		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		// When: the session resumes
		state, err := session.Resume(ctx)

		// Then: it continues where the stored match left off
		require.NoError(t, err)
		assert.Equal(t, stored.Snapshot("local"), state)
		assert.Equal(t, entity.PlayerO, state.Turn)
	})

	t.Run("Starts fresh when nothing is stored", func(t *testing.T) {
		repo := newMockMatchRepo(t)
		repo.On("GetByID", mock.Anything, "local").Return(nil, repository.ErrMatchNotFound).Once()

		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		state, err := session.Resume(ctx)

		require.NoError(t, err)
		assert.Equal(t, tictactoe.NewMatch().Snapshot("local"), state)
	})

	t.Run("Discards an invalid snapshot", func(t *testing.T) {
		// Given: a stored snapshot with an unknown turn
		repo := newMockMatchRepo(t)
		repo.On("GetByID", mock.Anything, "local").Return(&entity.Snapshot{ID: "local", Turn: "Z"}, nil).Once()
		repo.On("DeleteByID", mock.Anything, "local").Return(nil).Once()

		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		// When: the session resumes
		state, err := session.Resume(ctx)

		// Then: it starts fresh and removes the bad snapshot
		require.NoError(t, err)
		assert.Equal(t, tictactoe.NewMatch().Snapshot("local"), state)
	})

	t.Run("Reports storage failures", func(t *testing.T) {
		repo := newMockMatchRepo(t)
		repo.On("GetByID", mock.Anything, "local").Return(nil, errRedisDown).Once()

		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), repo)

		_, err := session.Resume(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Without a repository nothing is loaded", func(t *testing.T) {
		session := NewSession(discardLogger(), "local", tictactoe.NewMatch(), nil)

		state, err := session.Resume(ctx)

		require.NoError(t, err)
		assert.True(t, state.Outcome.IsOngoing())
	})
}
