package peer

import (
	"log"

	cerr "github.com/hamedsk/gridstrike/internal/error"
	mb "github.com/hamedsk/gridstrike/models/battleship"
	"github.com/hamedsk/gridstrike/models/wire"
)

// join handles the pairing gesture. Outside Connecting it is a no-op,
// which also blocks a third device from perturbing a running session.
func (p *Peer) join() {
	if p.phase != PhaseConnecting {
		log.Printf("peer %d: join gesture ignored: %v", p.localId, cerr.ErrUnexpectedPhase(p.phase))
		return
	}
	p.display.Status(StatusPairing)
	p.send(wire.PlayerJoined{PlayerId: p.localId})
}

func (p *Peer) onPlayerJoined(msg wire.Message) {
	joined := msg.(wire.PlayerJoined)

	if p.phase != PhaseConnecting {
		log.Printf("peer %d: PlayerJoined(%d) ignored: %v", p.localId, joined.PlayerId, cerr.ErrUnexpectedPhase(p.phase))
		return
	}

	p.phase = PhaseSetup
	p.role = RoleSecond
	p.peerPhase = PhaseSetup
	p.send(wire.ProceedingToSetup{PlayerId: joined.PlayerId})
	p.beginPlacement()
}

func (p *Peer) onProceedingToSetup(msg wire.Message) {
	reply := msg.(wire.ProceedingToSetup)

	if p.phase != PhaseConnecting {
		log.Printf("peer %d: ProceedingToSetup(%d) ignored: %v", p.localId, reply.PlayerId, cerr.ErrUnexpectedPhase(p.phase))
		return
	}

	// Identity disagreement is logged but non-fatal; there is no strict
	// peer authentication and the handshake proceeds regardless.
	if reply.PlayerId != p.localId {
		log.Printf("peer %d: %v", p.localId, cerr.ErrPeerIdMismatch(p.localId, reply.PlayerId))
	}

	p.phase = PhaseSetup
	p.role = RoleFirst
	p.peerPhase = PhaseSetup
	p.beginPlacement()
}

func (p *Peer) beginPlacement() {
	p.classIdx = 0
	p.remaining = p.catalog[0].Count
	p.display.Status(StatusPlacing)
}

// confirm reads the operator confirm gesture in the current phase.
func (p *Peer) confirm() {
	switch p.phase {
	case PhaseSetup:
		p.placeAtCursor()
	case PhasePlaying:
		p.attackAtCursor()
	default:
		// Confirm carries no meaning while connecting or waiting.
	}
}

// placeAtCursor tries the current catalog ship at the cursor. A
// rejected candidate keeps the operator on the same class with no
// bound on retries.
func (p *Peer) placeAtCursor() {
	if p.classIdx >= len(p.catalog) {
		log.Printf("peer %d: %v", p.localId, cerr.ErrFleetComplete())
		return
	}

	candidate := mb.NewShip(p.catalog[p.classIdx], p.cursor, p.orientation)
	if err := p.fleet.PlaceShip(candidate); err != nil {
		log.Printf("peer %d: placement rejected: %v", p.localId, err)
		p.display.Status(StatusBadPlace)
		return
	}
	p.display.ShipPlaced(candidate.Cells())

	p.remaining--
	if p.remaining == 0 {
		p.classIdx++
		if p.classIdx < len(p.catalog) {
			p.remaining = p.catalog[p.classIdx].Count
		}
	}

	if p.classIdx >= len(p.catalog) {
		p.phase = PhaseWaitingForPeerSetup
		p.display.Status(StatusWaitPeer)
		p.send(wire.ShipsPlaced{PlayerId: p.localId})
	}
}

func (p *Peer) onShipsPlaced(msg wire.Message) {
	placed := msg.(wire.ShipsPlaced)

	switch p.phase {
	case PhaseWaitingForPeerSetup:
		p.phase = PhasePlaying
		p.send(wire.StartGame{PlayerId: p.localId})
		p.beginPlay()

	case PhaseSetup:
		// Peer finished first; remember it and keep placing. Our own
		// ShipsPlaced will move them to Playing when we are done.
		p.peerPhase = PhaseWaitingForPeerSetup

	default:
		log.Printf("peer %d: ShipsPlaced(%d) ignored: %v", p.localId, placed.PlayerId, cerr.ErrUnexpectedPhase(p.phase))
	}
}

// onStartGame is the second path into Playing. It resolves the race
// where both peers finish placement nearly simultaneously: whichever
// ShipsPlaced/StartGame pair lands first in either direction still
// moves both peers to Playing exactly once.
func (p *Peer) onStartGame(msg wire.Message) {
	started := msg.(wire.StartGame)

	switch p.phase {
	case PhasePlaying:
		// Already there; no double transition.
		return
	case PhaseConnecting:
		log.Printf("peer %d: StartGame(%d) ignored: %v", p.localId, started.PlayerId, cerr.ErrUnexpectedPhase(p.phase))
		return
	}

	p.phase = PhasePlaying
	p.beginPlay()
}

func (p *Peer) beginPlay() {
	p.peerPhase = PhasePlaying

	// Turn ownership starts with role First.
	p.turn = RoleFirst
	if p.turn == p.role {
		p.display.Status(StatusYourTurn)
	} else {
		p.display.Status(StatusTheirTurn)
	}
}

func (p *Peer) attackAtCursor() {
	if p.turn != p.role {
		// Transient wait indication; nothing is sent.
		log.Printf("peer %d: %v", p.localId, cerr.ErrNotYourTurn())
		p.display.Status(StatusNotTurn)
		return
	}

	p.send(wire.Attack{Coords: p.cursor})
	p.turn = otherRole(p.role)
	p.display.Status(StatusTheirTurn)
}

// onAttack resolves the peer's shot against the local fleet. The scan
// is a pure read; no ship or cell is marked destroyed.
func (p *Peer) onAttack(msg wire.Message) {
	attack := msg.(wire.Attack)

	hit := p.fleet.IsHit(attack.Coords)
	if hit {
		p.send(wire.Hit{Coords: attack.Coords})
	} else {
		p.send(wire.Miss{Coords: attack.Coords})
	}
	p.display.IncomingAttack(attack.Coords, hit)

	// The marker advances when an attack crosses the device in either
	// direction; receiving one hands the turn to the local role.
	p.turn = p.role
	if p.phase == PhasePlaying {
		p.display.Status(StatusYourTurn)
	}
}

// onHit and onMiss are informational only: no model update and no turn
// resynchronization is triggered by them.
func (p *Peer) onHit(msg wire.Message) {
	hit := msg.(wire.Hit)
	p.display.ShotResult(hit.Coords, true)
	p.display.Status(StatusHit)
}

func (p *Peer) onMiss(msg wire.Message) {
	miss := msg.(wire.Miss)
	p.display.ShotResult(miss.Coords, false)
	p.display.Status(StatusMiss)
}

func (p *Peer) onPlayerLeft(msg wire.Message) {
	left := msg.(wire.PlayerLeft)
	log.Printf("peer %d: peer %d left the group", p.localId, left.PlayerId)
	p.display.Status(StatusPeerLeft)
}

func otherRole(role uint8) uint8 {
	if role == RoleFirst {
		return RoleSecond
	}
	return RoleFirst
}
