package tictactoe

import "github.com/rocketscienceinc/vanishing-tictactoe/internal/entity"

// WinLines is the scan order used by Winner: rows, columns, main diagonal, anti-diagonal.
var WinLines = [][3]entity.Coord{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// Board is the 3x3 grid of cells.
type Board struct {
	cells [entity.BoardSize][entity.BoardSize]entity.Mark
}

func InBounds(row, col int) bool {
	return entity.Coord{Row: row, Col: col}.InBounds()
}

// Set places mark on an empty cell. The caller checks legality; out-of-bounds writes are dropped.
func (that *Board) Set(row, col int, mark entity.Mark) {
	if !InBounds(row, col) {
		return
	}

	that.cells[row][col] = mark
}

func (that *Board) Clear(row, col int) {
	that.Set(row, col, entity.EmptyCell)
}

// At returns the mark at (row, col), or EmptyCell when out of bounds.
func (that *Board) At(row, col int) entity.Mark {
	if !InBounds(row, col) {
		return entity.EmptyCell
	}

	return that.cells[row][col]
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == entity.EmptyCell {
				return false
			}
		}
	}

	return true
}

// Winner returns the mark of the first completed line in WinLines order, or EmptyCell.
func (that *Board) Winner() entity.Mark {
	for _, line := range WinLines {
		a := that.At(line[0].Row, line[0].Col)
		b := that.At(line[1].Row, line[1].Col)
		c := that.At(line[2].Row, line[2].Col)

		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [entity.BoardSize][entity.BoardSize]entity.Mark {
	return that.cells
}

func (that *Board) reset() {
	that.cells = [entity.BoardSize][entity.BoardSize]entity.Mark{}
}
