package entity

// PlayerState lists a player's active cells, oldest first.
type PlayerState struct {
	Mark   Mark    `json:"mark"`
	Active []Coord `json:"active"`
}

// Vanishing returns the cell that disappears on this player's next move.
func (that PlayerState) Vanishing() (Coord, bool) {
	if len(that.Active) < MaxActiveCells {
		return Coord{}, false
	}

	return that.Active[0], true
}

// Snapshot is a read-only view of a match, used for rendering and storage.
type Snapshot struct {
	ID      string                     `json:"id"`
	Board   [BoardSize][BoardSize]Mark `json:"board"`
	Turn    Mark                       `json:"player_turn"`
	Outcome Outcome                    `json:"outcome"`
	Players []PlayerState              `json:"players"`
}

// Player returns the state of the player holding mark.
func (that *Snapshot) Player(mark Mark) (PlayerState, bool) {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player, true
		}
	}

	return PlayerState{}, false
}

// IsVanishing reports whether the mark at coord is the next one its owner loses.
func (that *Snapshot) IsVanishing(coord Coord) bool {
	for _, player := range that.Players {
		if oldest, ok := player.Vanishing(); ok && oldest == coord {
			return true
		}
	}

	return false
}
