package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/vanishing-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/entity"
)

// Restore replaces the match state with snapshot. The board is rebuilt from the player queues and the
// outcome is derived from the rebuilt board. On error the match is left untouched.
func (that *Match) Restore(snapshot *entity.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: nil snapshot", apperror.ErrInvalidSnapshot)
	}

	if !snapshot.Turn.IsPlayer() {
		return fmt.Errorf("%w: unknown turn %q", apperror.ErrInvalidSnapshot, snapshot.Turn)
	}

	if err := validateOutcome(snapshot.Outcome); err != nil {
		return err
	}

	var board Board
	queues := make(map[entity.Mark][]entity.Coord, len(that.players))

	for _, player := range snapshot.Players {
		if !player.Mark.IsPlayer() {
			return fmt.Errorf("%w: unknown player %q", apperror.ErrInvalidSnapshot, player.Mark)
		}

		if _, seen := queues[player.Mark]; seen {
			return fmt.Errorf("%w: duplicate player %q", apperror.ErrInvalidSnapshot, player.Mark)
		}

		if len(player.Active) > entity.MaxActiveCells {
			return fmt.Errorf("%w: player %q has %d active cells", apperror.ErrInvalidSnapshot, player.Mark, len(player.Active))
		}

		for _, coord := range player.Active {
			if !coord.InBounds() {
				return fmt.Errorf("%w: cell %+v out of bounds", apperror.ErrInvalidSnapshot, coord)
			}

			if board.At(coord.Row, coord.Col) != entity.EmptyCell {
				return fmt.Errorf("%w: cell %+v used twice", apperror.ErrInvalidSnapshot, coord)
			}

			board.Set(coord.Row, coord.Col, player.Mark)
		}

		queues[player.Mark] = player.Active
	}

	if board.Cells() != snapshot.Board {
		return fmt.Errorf("%w: board does not match player cells", apperror.ErrInvalidSnapshot)
	}

	won := board.Winner() != entity.EmptyCell
	if err := validateTurn(snapshot.Turn, len(queues[entity.PlayerX]), len(queues[entity.PlayerO]), won); err != nil {
		return err
	}

	that.Restart()

	for mark, active := range queues {
		for _, coord := range active {
			that.players[mark].RecordMove(coord)
		}
	}

	that.board = board
	that.turn = snapshot.Turn

	switch winner := board.Winner(); {
	case winner != entity.EmptyCell:
		that.outcome = entity.Won(winner)
		that.turn = winner
	case board.IsFull():
		that.outcome = entity.Draw()
	default:
		that.outcome = entity.Ongoing()
	}

	return nil
}

func validateOutcome(outcome entity.Outcome) error {
	switch outcome.Status {
	case entity.StatusOngoing, entity.StatusDraw:
		return nil
	case entity.StatusWon:
		if !outcome.Winner.IsPlayer() {
			return fmt.Errorf("%w: unknown winner %q", apperror.ErrInvalidSnapshot, outcome.Winner)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", apperror.ErrInvalidSnapshot, outcome.Status)
	}
}

// validateTurn checks turn against the queue sizes. X moves first, so X holds as many cells as O or one
// more. Once both queues are full either player may be next, and a won match keeps the winner's turn.
func validateTurn(turn entity.Mark, xCells, oCells int, won bool) error {
	if xCells != oCells && xCells != oCells+1 {
		return fmt.Errorf("%w: %d X cells and %d O cells", apperror.ErrInvalidSnapshot, xCells, oCells)
	}

	if won || (xCells == entity.MaxActiveCells && oCells == entity.MaxActiveCells) {
		return nil
	}

	expected := entity.PlayerX
	if xCells > oCells {
		expected = entity.PlayerO
	}

	if turn != expected {
		return fmt.Errorf("%w: %q to move with %d X cells and %d O cells", apperror.ErrInvalidSnapshot, turn, xCells, oCells)
	}

	return nil
}
