package error

import "fmt"

func ErrCoordinatesOutOfRange(v int64) error {
	return fmt.Errorf("encoded coordinates value is out of grid range, value: %d", v)
}

func ErrShipOutOfBounds(x, y int) error {
	return fmt.Errorf("candidate ship cell is out of game grid bound\tx: %d\ty: %d", x, y)
}

func ErrShipOverlap(x, y int) error {
	return fmt.Errorf("candidate ship cell overlaps an already placed ship\tx: %d\ty: %d", x, y)
}

func ErrUnknownWireKey(key string) error {
	return fmt.Errorf("wire key is not in the catalog, key: %s", key)
}

func ErrUnknownMessageKind(kind uint8) error {
	return fmt.Errorf("message kind is not in the catalog, kind: %d", kind)
}

func ErrUnexpectedPhase(phase uint8) error {
	return fmt.Errorf("message arrived while in unexpected phase, phase: %d", phase)
}

func ErrPeerIdMismatch(localId, receivedId int64) error {
	return fmt.Errorf("handshake reply id does not match local id\tlocal: %d\treceived: %d", localId, receivedId)
}

func ErrNotYourTurn() error {
	return fmt.Errorf("attack attempted while it is not the local player's turn")
}

func ErrFleetComplete() error {
	return fmt.Errorf("all ships of the catalog are already placed")
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionNotInGroup(sessionId string) error {
	return fmt.Errorf("session has not joined a broadcast group yet, id: %s", sessionId)
}

