package tictactoe

import "github.com/rocketscienceinc/vanishing-tictactoe/internal/entity"

// PlayerSlot tracks one player's active cells, oldest first, capped at entity.MaxActiveCells.
type PlayerSlot struct {
	mark   entity.Mark
	active []entity.Coord
}

func NewPlayerSlot(mark entity.Mark) *PlayerSlot {
	return &PlayerSlot{
		mark:   mark,
		active: make([]entity.Coord, 0, entity.MaxActiveCells),
	}
}

func (that *PlayerSlot) Mark() entity.Mark {
	return that.mark
}

func (that *PlayerSlot) Len() int {
	return len(that.active)
}

// RecordMove appends coord. When the slot is already full the oldest cell is dropped first and returned
// so the caller can clear it from the board.
func (that *PlayerSlot) RecordMove(coord entity.Coord) (entity.Coord, bool) {
	var (
		evicted entity.Coord
		ok      bool
	)

	if len(that.active) == entity.MaxActiveCells {
		evicted, ok = that.active[0], true
		copy(that.active, that.active[1:])
		that.active = that.active[:len(that.active)-1]
	}

	that.active = append(that.active, coord)

	return evicted, ok
}

// Reset forgets all active cells. The board is left alone.
func (that *PlayerSlot) Reset() {
	that.active = that.active[:0]
}

func (that *PlayerSlot) Oldest() (entity.Coord, bool) {
	if len(that.active) == 0 {
		return entity.Coord{}, false
	}

	return that.active[0], true
}

// Vanishing returns the cell RecordMove would evict next, if any.
func (that *PlayerSlot) Vanishing() (entity.Coord, bool) {
	if len(that.active) < entity.MaxActiveCells {
		return entity.Coord{}, false
	}

	return that.active[0], true
}

// Active returns a copy of the active cells, oldest first.
func (that *PlayerSlot) Active() []entity.Coord {
	active := make([]entity.Coord, len(that.active))
	copy(active, that.active)

	return active
}

func (that *PlayerSlot) state() entity.PlayerState {
	return entity.PlayerState{
		Mark:   that.mark,
		Active: that.Active(),
	}
}
