package peer

import (
	"log"
	"math/rand"

	mb "github.com/hamedsk/gridstrike/models/battleship"
	"github.com/hamedsk/gridstrike/models/wire"
	"github.com/hamedsk/gridstrike/transport"
)

const (
	PhaseConnecting uint8 = iota
	PhaseSetup
	PhaseWaitingForPeerSetup
	PhasePlaying

	// Declared for completeness of the phase model. No transition
	// reaches it: win detection is absent from this design.
	PhaseGameOver
)

const (
	RoleUnassigned uint8 = iota
	RoleFirst
	RoleSecond
)

const inboxSize = 64

// event is the closed set of inputs the peer loop consumes: inbound
// wire pairs and operator gestures.
type event interface{ isEvent() }

type wirePairEvent struct {
	key   string
	value int64
}

type moveCursorEvent struct {
	dx, dy int
}

type confirmEvent struct{}

type joinEvent struct{}

type leaveEvent struct{}

func (wirePairEvent) isEvent()   {}
func (moveCursorEvent) isEvent() {}
func (confirmEvent) isEvent()    {}
func (joinEvent) isEvent()       {}
func (leaveEvent) isEvent()      {}

// Peer drives one device through the connect, setup, wait and play
// progression. All mutable session state below is owned exclusively by
// this peer and mutated only while processing its own events, one at a
// time: a handler always runs to completion before the next event.
type Peer struct {
	localId int64

	phase uint8
	role  uint8

	// turn is the role currently allowed to attack. It advances when an
	// attack crosses this device in either direction, so a lost attack
	// broadcast leaves the two devices disagreeing about whose turn it
	// is. Known gap in this design.
	turn uint8

	cursor      mb.Coordinates
	orientation uint8
	fleet       *mb.Fleet

	catalog   []mb.ShipClass
	classIdx  int
	remaining uint8

	// peerPhase mirrors what the other device last implied about its
	// own phase. Best effort and possibly stale: it never gates a
	// local transition.
	peerPhase uint8

	display   Display
	messenger *wire.Messenger
	router    *wire.Router

	inbox chan event
}

// NewPeer wires a peer onto a transport. All wire handlers are
// registered here exactly once for the process lifetime; the router
// offers no unregistration.
func NewPeer(tr transport.Transport, display Display) *Peer {
	router := wire.NewRouter()

	p := &Peer{
		// Non-cryptographic identity, only used to correlate handshake
		// replies. Uniqueness is not enforced.
		localId: rand.Int63n(1 << 16),

		phase:       PhaseConnecting,
		role:        RoleUnassigned,
		orientation: mb.OrientationHorizontal,
		fleet:       mb.NewFleet(),
		catalog:     mb.NewShipClassCatalog(),
		peerPhase:   PhaseConnecting,
		display:     display,
		router:      router,
		messenger:   wire.NewMessenger(tr, router),
		inbox:       make(chan event, inboxSize),
	}

	router.On(wire.KindPlayerJoined, p.onPlayerJoined)
	router.On(wire.KindProceedingToSetup, p.onProceedingToSetup)
	router.On(wire.KindShipsPlaced, p.onShipsPlaced)
	router.On(wire.KindStartGame, p.onStartGame)
	router.On(wire.KindAttack, p.onAttack)
	router.On(wire.KindHit, p.onHit)
	router.On(wire.KindMiss, p.onMiss)
	router.On(wire.KindPlayerLeft, p.onPlayerLeft)

	tr.Subscribe(func(key string, value int64) {
		p.post(wirePairEvent{key: key, value: value})
	})

	display.Status(StatusPressJoin)
	display.Cursor(p.cursor)
	return p
}

// post enqueues without blocking. The medium guarantees no delivery,
// so a full inbox may lose the event.
func (p *Peer) post(ev event) {
	select {
	case p.inbox <- ev:
	default:
		log.Printf("peer %d: inbox full, dropping event %T", p.localId, ev)
	}
}

// Step processes at most one pending event and reports whether one was
// there. Drain and Step must be called from a single goroutine; that
// goroutine is the one logical thread owning all peer state.
func (p *Peer) Step() bool {
	select {
	case ev := <-p.inbox:
		p.handleEvent(ev)
		return true
	default:
		return false
	}
}

// Drain processes every pending event.
func (p *Peer) Drain() {
	for p.Step() {
	}
}

func (p *Peer) handleEvent(ev event) {
	switch e := ev.(type) {
	case wirePairEvent:
		p.messenger.Receive(e.key, e.value)

	case moveCursorEvent:
		p.moveCursor(e.dx, e.dy)

	case confirmEvent:
		p.confirm()

	case joinEvent:
		p.join()

	case leaveEvent:
		p.send(wire.PlayerLeft{PlayerId: p.localId})
	}
}

// MoveX and MoveY are the discrete operator movement events.
func (p *Peer) MoveX(dx int) { p.post(moveCursorEvent{dx: dx}) }
func (p *Peer) MoveY(dy int) { p.post(moveCursorEvent{dy: dy}) }

// Confirm is the operator confirm gesture; its meaning depends on the
// current phase.
func (p *Peer) Confirm() { p.post(confirmEvent{}) }

// Join is the distinguished pairing gesture, valid only while
// connecting.
func (p *Peer) Join() { p.post(joinEvent{}) }

// Leave announces an orderly departure to the group.
func (p *Peer) Leave() { p.post(leaveEvent{}) }

func (p *Peer) LocalId() int64         { return p.localId }
func (p *Peer) Phase() uint8           { return p.phase }
func (p *Peer) Role() uint8            { return p.role }
func (p *Peer) Turn() uint8            { return p.turn }
func (p *Peer) Cursor() mb.Coordinates { return p.cursor }
func (p *Peer) Fleet() *mb.Fleet       { return p.fleet }

// PeerPhase is the possibly-stale mirror of the other device's phase.
func (p *Peer) PeerPhase() uint8 { return p.peerPhase }

func (p *Peer) send(msg wire.Message) {
	// Delivery is best effort; a failed broadcast is logged and the
	// session carries on.
	if err := p.messenger.Send(msg); err != nil {
		log.Printf("peer %d: broadcast failed: %v", p.localId, err)
	}
}

func (p *Peer) moveCursor(dx, dy int) {
	size := int(mb.GridSize)
	x := (int(p.cursor.X) + dx%size + size) % size
	y := (int(p.cursor.Y) + dy%size + size) % size
	p.cursor = mb.NewCoordinates(uint8(x), uint8(y))
	p.display.Cursor(p.cursor)
}
