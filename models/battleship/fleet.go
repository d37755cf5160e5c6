package battleship

import (
	cerr "github.com/hamedsk/gridstrike/internal/error"
)

// Fleet is the ordered collection of one player's placed ships. It is
// exclusively owned by that player's state machine: it grows during
// setup and is read-only afterwards.
type Fleet struct {
	ships []Ship
}

func NewFleet() *Fleet {
	return &Fleet{
		ships: make([]Ship, 0, TotalShipsInCatalog(NewShipClassCatalog())),
	}
}

// PlaceShip validates the candidate and appends it. A cell out of
// grid bounds or intersecting an already placed ship rejects the
// whole candidate and leaves the fleet untouched.
func (f *Fleet) PlaceShip(sh Ship) error {
	for _, cell := range sh.cellOffsets() {
		x, y := cell[0], cell[1]
		if x < 0 || x > int(GridValidUpperBound) || y < 0 || y > int(GridValidUpperBound) {
			return cerr.ErrShipOutOfBounds(x, y)
		}
	}

	for _, candidate := range sh.Cells() {
		for _, placed := range f.ships {
			for _, occupied := range placed.Cells() {
				if candidate == occupied {
					return cerr.ErrShipOverlap(int(candidate.X), int(candidate.Y))
				}
			}
		}
	}

	f.ships = append(f.ships, sh)
	return nil
}

// IsHit answers an attack against this fleet. It is a pure read:
// no ship or cell is marked as destroyed.
func (f *Fleet) IsHit(c Coordinates) bool {
	for _, sh := range f.ships {
		for _, occupied := range sh.Cells() {
			if occupied == c {
				return true
			}
		}
	}
	return false
}

func (f *Fleet) Size() int {
	return len(f.ships)
}

func (f *Fleet) Ships() []Ship {
	return f.ships
}

// OccupiedCells is what a display needs to draw the local board.
func (f *Fleet) OccupiedCells() []Coordinates {
	var cells []Coordinates
	for _, sh := range f.ships {
		cells = append(cells, sh.Cells()...)
	}
	return cells
}
