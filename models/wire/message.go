package wire

import (
	mb "github.com/hamedsk/gridstrike/models/battleship"
)

const (
	KindPlayerJoined uint8 = iota
	KindPlayerLeft
	KindProceedingToSetup
	KindShipsPlaced
	KindStartGame
	KindAttack
	KindHit
	KindMiss

	// An inbound pair whose key is not in the catalog. The raw integer
	// is passed through as a best effort instead of failing.
	KindUnknown
)

// Message is the closed set of application messages. Each kind carries
// exactly one payload shape: a plain integer id or a grid coordinate.
type Message interface {
	Kind() uint8
}

type PlayerJoined struct {
	PlayerId int64
}

type PlayerLeft struct {
	PlayerId int64
}

type ProceedingToSetup struct {
	PlayerId int64
}

type ShipsPlaced struct {
	PlayerId int64
}

type StartGame struct {
	PlayerId int64
}

type Attack struct {
	Coords mb.Coordinates
}

type Hit struct {
	Coords mb.Coordinates
}

type Miss struct {
	Coords mb.Coordinates
}

type Unknown struct {
	Key   string
	Value int64
}

func (PlayerJoined) Kind() uint8      { return KindPlayerJoined }
func (PlayerLeft) Kind() uint8        { return KindPlayerLeft }
func (ProceedingToSetup) Kind() uint8 { return KindProceedingToSetup }
func (ShipsPlaced) Kind() uint8       { return KindShipsPlaced }
func (StartGame) Kind() uint8         { return KindStartGame }
func (Attack) Kind() uint8            { return KindAttack }
func (Hit) Kind() uint8               { return KindHit }
func (Miss) Kind() uint8              { return KindMiss }
func (Unknown) Kind() uint8           { return KindUnknown }
