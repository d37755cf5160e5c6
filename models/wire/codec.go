package wire

import (
	"log"

	cerr "github.com/hamedsk/gridstrike/internal/error"
	mb "github.com/hamedsk/gridstrike/models/battleship"
)

// Wire key catalog. The first character declares the payload shape:
// 'n' keys carry a plain integer, 'c' keys carry an encoded coordinate.
const (
	KeyPlayerJoined      = "nj"
	KeyPlayerLeft        = "nl"
	KeyProceedingToSetup = "np"
	KeyShipsPlaced       = "ns"
	KeyStartGame         = "ng"
	KeyAttack            = "ca"
	KeyHit               = "ch"
	KeyMiss              = "cm"
)

// Encode maps a typed message onto its (key, integer) wire pair, the
// only representation ever transmitted.
func Encode(msg Message) (string, int64, error) {
	switch m := msg.(type) {
	case PlayerJoined:
		return KeyPlayerJoined, m.PlayerId, nil
	case PlayerLeft:
		return KeyPlayerLeft, m.PlayerId, nil
	case ProceedingToSetup:
		return KeyProceedingToSetup, m.PlayerId, nil
	case ShipsPlaced:
		return KeyShipsPlaced, m.PlayerId, nil
	case StartGame:
		return KeyStartGame, m.PlayerId, nil
	case Attack:
		return KeyAttack, mb.EncodeCoordinates(m.Coords), nil
	case Hit:
		return KeyHit, mb.EncodeCoordinates(m.Coords), nil
	case Miss:
		return KeyMiss, mb.EncodeCoordinates(m.Coords), nil
	default:
		return "", 0, cerr.ErrUnknownMessageKind(msg.Kind())
	}
}

// Decode looks up the declared payload shape for the key and rebuilds
// the typed message. An unrecognized key logs a warning and passes the
// raw integer through rather than failing; a coordinate payload out of
// grid range is an error the caller must discard.
func Decode(key string, value int64) (Message, error) {
	switch key {
	case KeyPlayerJoined:
		return PlayerJoined{PlayerId: value}, nil
	case KeyPlayerLeft:
		return PlayerLeft{PlayerId: value}, nil
	case KeyProceedingToSetup:
		return ProceedingToSetup{PlayerId: value}, nil
	case KeyShipsPlaced:
		return ShipsPlaced{PlayerId: value}, nil
	case KeyStartGame:
		return StartGame{PlayerId: value}, nil
	case KeyAttack:
		coords, err := mb.DecodeCoordinates(value)
		if err != nil {
			return nil, err
		}
		return Attack{Coords: coords}, nil
	case KeyHit:
		coords, err := mb.DecodeCoordinates(value)
		if err != nil {
			return nil, err
		}
		return Hit{Coords: coords}, nil
	case KeyMiss:
		coords, err := mb.DecodeCoordinates(value)
		if err != nil {
			return nil, err
		}
		return Miss{Coords: coords}, nil
	default:
		log.Printf("warning: %v", cerr.ErrUnknownWireKey(key))
		return Unknown{Key: key, Value: value}, nil
	}
}
