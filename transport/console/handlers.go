package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rocketscienceinc/vanishing-tictactoe/internal/apperror"
)

const helpText = `Commands:
  1-9        place a mark, counted from the top left
  ROW COL    place a mark at zero-based coordinates, e.g. "2 0"
  r          restart (Enter also restarts once the game is over)
  q          quit
  h          show this help
`

func (that *Server) handleKeypad(ctx context.Context, args []string, _ io.Writer) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, args[0])
	}

	_, err = that.session.MoveAtIndex(ctx, index)

	return err
}

func (that *Server) handleCoords(ctx context.Context, args []string, _ io.Writer) error {
	row, rowErr := strconv.Atoi(args[0])
	col, colErr := strconv.Atoi(args[1])

	if rowErr != nil || colErr != nil {
		return fmt.Errorf("%w: %q %q", apperror.ErrUnknownCommand, args[0], args[1])
	}

	_, err := that.session.MoveAt(ctx, row, col)

	return err
}

// handleBlank restarts a finished match, like the space bar after a game over.
func (that *Server) handleBlank(ctx context.Context, _ []string, _ io.Writer) error {
	if that.session.State().Outcome.IsFinished() {
		that.session.Restart(ctx)
	}

	return nil
}

func (that *Server) handleRestart(ctx context.Context, _ []string, _ io.Writer) error {
	that.session.Restart(ctx)

	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string, _ io.Writer) error {
	that.logger.Info("quit requested")

	return apperror.ErrQuit
}

func (that *Server) handleHelp(_ context.Context, _ []string, out io.Writer) error {
	return that.printf(out, "%s", helpText)
}
