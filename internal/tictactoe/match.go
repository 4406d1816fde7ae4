package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/vanishing-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/entity"
)

// FirstPlayer moves first in every match.
const FirstPlayer = entity.PlayerX

// Match owns the board and both players and drives turns and the outcome.
// It is not safe for concurrent use.
type Match struct {
	board   Board
	players map[entity.Mark]*PlayerSlot
	turn    entity.Mark
	outcome entity.Outcome
}

func NewMatch() *Match {
	return &Match{
		players: map[entity.Mark]*PlayerSlot{
			entity.PlayerX: NewPlayerSlot(entity.PlayerX),
			entity.PlayerO: NewPlayerSlot(entity.PlayerO),
		},
		turn:    FirstPlayer,
		outcome: entity.Ongoing(),
	}
}

// CheckMove reports why a move at (row, col) would be rejected, or nil if it is legal.
func (that *Match) CheckMove(row, col int) error {
	if !that.outcome.IsOngoing() {
		return apperror.ErrGameFinished
	}

	if !InBounds(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, row, col)
	}

	if that.board.At(row, col) != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// AttemptMove plays the current player's mark at (row, col). Illegal moves are ignored and report false.
func (that *Match) AttemptMove(row, col int) bool {
	if that.CheckMove(row, col) != nil {
		return false
	}

	mover := that.players[that.turn]

	if evicted, ok := mover.RecordMove(entity.Coord{Row: row, Col: col}); ok {
		that.board.Clear(evicted.Row, evicted.Col)
	}

	that.board.Set(row, col, mover.Mark())
	that.updateOutcome()

	return true
}

// AttemptMoveAtBoardIndex plays at keypad index 1..9, counted row-major from the top left.
func (that *Match) AttemptMoveAtBoardIndex(index int) bool {
	coord, ok := entity.CoordFromIndex(index)
	if !ok {
		return false
	}

	return that.AttemptMove(coord.Row, coord.Col)
}

// Restart empties the board and both queues and hands the first move back to FirstPlayer.
func (that *Match) Restart() {
	that.board.reset()

	for _, player := range that.players {
		player.Reset()
	}

	that.turn = FirstPlayer
	that.outcome = entity.Ongoing()
}

// updateOutcome runs after every accepted move.
func (that *Match) updateOutcome() {
	switch winner := that.board.Winner(); {
	case winner != entity.EmptyCell:
		that.outcome = entity.Won(winner)
	case that.board.IsFull():
		that.outcome = entity.Draw()
	default:
		that.turn = that.turn.Opponent()
	}
}

func (that *Match) Turn() entity.Mark {
	return that.turn
}

func (that *Match) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Match) Board() [entity.BoardSize][entity.BoardSize]entity.Mark {
	return that.board.Cells()
}

// Player returns a copy of the active cells held by mark. The result is detached from the match.
func (that *Match) Player(mark entity.Mark) (entity.PlayerState, bool) {
	player, ok := that.players[mark]
	if !ok {
		return entity.PlayerState{}, false
	}

	return player.state(), true
}

// Snapshot captures the match under the given id.
func (that *Match) Snapshot(id string) *entity.Snapshot {
	return &entity.Snapshot{
		ID:      id,
		Board:   that.board.Cells(),
		Turn:    that.turn,
		Outcome: that.outcome,
		Players: []entity.PlayerState{
			that.players[entity.PlayerX].state(),
			that.players[entity.PlayerO].state(),
		},
	}
}
