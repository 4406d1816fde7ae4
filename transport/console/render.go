package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/vanishing-tictactoe/internal/entity"
)

const rowSeparator = "---+---+---\n"

// Render draws the board and a status line. Empty cells show their keypad number and a mark that
// vanishes on its owner's next move is drawn in lower case.
func Render(snapshot *entity.Snapshot) string {
	var b strings.Builder

	for row := 0; row < entity.BoardSize; row++ {
		if row > 0 {
			b.WriteString(rowSeparator)
		}

		for col := 0; col < entity.BoardSize; col++ {
			if col > 0 {
				b.WriteString("|")
			}

			fmt.Fprintf(&b, " %s ", cellLabel(snapshot, entity.Coord{Row: row, Col: col}))
		}

		b.WriteString("\n")
	}

	b.WriteString(statusLine(snapshot))
	b.WriteString("\n")

	return b.String()
}

func cellLabel(snapshot *entity.Snapshot, coord entity.Coord) string {
	mark := snapshot.Board[coord.Row][coord.Col]

	switch {
	case mark == entity.EmptyCell:
		return strconv.Itoa(coord.Row*entity.BoardSize + coord.Col + 1)
	case snapshot.IsVanishing(coord):
		return strings.ToLower(string(mark))
	default:
		return string(mark)
	}
}

func statusLine(snapshot *entity.Snapshot) string {
	switch snapshot.Outcome.Status {
	case entity.StatusWon:
		return fmt.Sprintf("%s wins! Press r or Enter to restart, q to quit.", snapshot.Outcome.Winner)
	case entity.StatusDraw:
		return "It's a draw! Press r or Enter to restart, q to quit."
	default:
		return fmt.Sprintf("%s to move", snapshot.Turn)
	}
}
