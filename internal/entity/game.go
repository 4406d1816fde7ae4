package entity

// Mark is the content of a single board cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

// BoardSize is the side length of the board.
const BoardSize = 3

// MaxActiveCells is how many marks a player may have on the board at once.
const MaxActiveCells = 3

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Coord addresses a cell by zero-based row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// CoordFromIndex maps a keypad index 1..9 onto the board in row-major order.
func CoordFromIndex(index int) (Coord, bool) {
	if index < 1 || index > BoardSize*BoardSize {
		return Coord{}, false
	}

	index--

	return Coord{Row: index / BoardSize, Col: index % BoardSize}, true
}

// Outcome is the terminal state of a match. Winner is set only when Status is StatusWon.
type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func Ongoing() Outcome {
	return Outcome{Status: StatusOngoing}
}

func Won(winner Mark) Outcome {
	return Outcome{Status: StatusWon, Winner: winner}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

func (that Outcome) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}
