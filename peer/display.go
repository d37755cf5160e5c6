package peer

import (
	mb "github.com/hamedsk/gridstrike/models/battleship"
)

// Short status codes for the status surface.
const (
	StatusPressJoin = "JOIN"
	StatusPairing   = "PAIR"
	StatusPlacing   = "PLACE"
	StatusWaitPeer  = "SYNC"
	StatusYourTurn  = "FIRE"
	StatusTheirTurn = "HOLD"
	StatusNotTurn   = "WAIT"
	StatusBadPlace  = "X"
	StatusHit       = "HIT"
	StatusMiss      = "MISS"
	StatusPeerLeft  = "LEFT"
)

// Display is the write-only external display collaborator: a small
// square light grid plus a short-string status surface. It consumes
// coordinates and status codes and produces nothing the core reads.
type Display interface {
	Status(code string)
	Cursor(c mb.Coordinates)

	// ShipPlaced lights the cells of a newly accepted ship.
	ShipPlaced(cells []mb.Coordinates)

	// ShotResult shows the outcome of the local player's attack.
	ShotResult(c mb.Coordinates, hit bool)

	// IncomingAttack shows the peer's attack against the local board.
	IncomingAttack(c mb.Coordinates, hit bool)
}

type NopDisplay struct{}

func (NopDisplay) Status(string)                        {}
func (NopDisplay) Cursor(mb.Coordinates)                {}
func (NopDisplay) ShipPlaced([]mb.Coordinates)          {}
func (NopDisplay) ShotResult(mb.Coordinates, bool)      {}
func (NopDisplay) IncomingAttack(mb.Coordinates, bool)  {}

var _ Display = NopDisplay{}
