package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/vanishing-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/vanishing-tictactoe/internal/entity"
)

type session interface {
	MoveAt(ctx context.Context, row, col int) (*entity.Snapshot, error)
	MoveAtIndex(ctx context.Context, index int) (*entity.Snapshot, error)
	Restart(ctx context.Context) *entity.Snapshot
	State() *entity.Snapshot
}

type handler func(ctx context.Context, args []string, out io.Writer) error

// Server reads one command per line and renders the board after every command.
type Server struct {
	logger  *slog.Logger
	session session

	handlers map[string]handler
}

func New(logger *slog.Logger, session session) *Server {
	server := &Server{
		logger:  logger.With("component", "console"),
		session: session,

		handlers: make(map[string]handler),
	}

	server.handlers["r"] = server.handleRestart
	server.handlers["restart"] = server.handleRestart
	server.handlers["q"] = server.handleQuit
	server.handlers["quit"] = server.handleQuit
	server.handlers["h"] = server.handleHelp
	server.handlers["help"] = server.handleHelp

	return server
}

// Start runs the input loop until quit, end of input or ctx cancellation.
func (that *Server) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Start")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErr <- scanner.Err()
	}()

	if err := that.render(out, that.session.State()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("context canceled, leaving input loop")
			return nil
		case line, ok := <-lines:
			if !ok {
				// scanErr is filled before lines is closed unless the reader gave up on ctx.
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}

				log.Info("end of input")

				return nil
			}

			err := that.processLine(ctx, line, out)
			if errors.Is(err, apperror.ErrQuit) {
				return nil
			}

			if err != nil {
				return err
			}
		}
	}
}

// processLine runs a single command and redraws the board. Only output failures and quit are returned.
func (that *Server) processLine(ctx context.Context, line string, out io.Writer) error {
	err := that.dispatch(ctx, line, out)
	if errors.Is(err, apperror.ErrQuit) {
		return err
	}

	if err = that.report(err, out); err != nil {
		return err
	}

	return that.render(out, that.session.State())
}

func (that *Server) dispatch(ctx context.Context, line string, out io.Writer) error {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 0:
		return that.handleBlank(ctx, fields, out)
	case len(fields) == 1 && isKeypad(fields[0]):
		return that.handleKeypad(ctx, fields, out)
	}

	// Named commands win over coordinates, so "q now" still quits.
	if handle, ok := that.handlers[fields[0]]; ok {
		return handle(ctx, fields[1:], out)
	}

	if len(fields) == 2 {
		return that.handleCoords(ctx, fields, out)
	}

	return fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, strings.TrimSpace(line))
}

// report turns command errors into user feedback. Rule rejections and storage failures are not fatal.
func (that *Server) report(err error, out io.Writer) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperror.ErrUnknownCommand):
		return that.printf(out, "%v. Type h for help.\n", err)
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrInvalidCell):
		return that.printf(out, "Illegal move: %v\n", err)
	default:
		that.logger.Error("command failed", "error", err)
		return that.printf(out, "Warning: %v\n", err)
	}
}

func (that *Server) printf(out io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(out, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (that *Server) render(out io.Writer, snapshot *entity.Snapshot) error {
	return that.printf(out, "%s> ", Render(snapshot))
}

func isKeypad(field string) bool {
	index, err := strconv.Atoi(field)
	return err == nil && len(field) == 1 && index >= 1
}
