package wire

import (
	"testing"

	mb "github.com/hamedsk/gridstrike/models/battleship"
)

type recordingSender struct {
	keys   []string
	values []int64
}

func (rs *recordingSender) Broadcast(key string, value int64) error {
	rs.keys = append(rs.keys, key)
	rs.values = append(rs.values, value)
	return nil
}

func TestRouterDispatchOrder(t *testing.T) {
	router := NewRouter()

	var order []int
	router.On(KindAttack, func(Message) { order = append(order, 1) })
	router.On(KindAttack, func(Message) { order = append(order, 2) })
	router.On(KindAttack, func(Message) { order = append(order, 3) })

	router.Dispatch(Attack{Coords: mb.NewCoordinates(0, 0)})

	if len(order) != 3 {
		t.Fatalf("expected 3 handler invocations\tgot: %d", len(order))
	}
	for i, n := range order {
		if n != i+1 {
			t.Fatalf("handlers ran out of registration order: %v", order)
		}
	}
}

func TestRouterDropsUnhandledKind(t *testing.T) {
	router := NewRouter()

	var invoked bool
	router.On(KindHit, func(Message) { invoked = true })

	// No handler for misses; the dispatch must be a silent no-op.
	router.Dispatch(Miss{Coords: mb.NewCoordinates(1, 1)})

	if invoked {
		t.Fatal("handler for a different kind was invoked")
	}
}

func TestMessengerSend(t *testing.T) {
	sender := &recordingSender{}
	messenger := NewMessenger(sender, NewRouter())

	if err := messenger.Send(ShipsPlaced{PlayerId: 11}); err != nil {
		t.Fatal(err)
	}

	if len(sender.keys) != 1 || sender.keys[0] != KeyShipsPlaced || sender.values[0] != 11 {
		t.Fatalf("expected broadcast (ns, 11)\tgot: %v %v", sender.keys, sender.values)
	}
}

func TestMessengerReceiveDispatches(t *testing.T) {
	router := NewRouter()
	messenger := NewMessenger(&recordingSender{}, router)

	var received mb.Coordinates
	router.On(KindAttack, func(msg Message) {
		received = msg.(Attack).Coords
	})

	messenger.Receive(KeyAttack, 17)

	if received != mb.NewCoordinates(2, 3) {
		t.Fatalf("expected dispatched coords (2,3)\tgot: (%d,%d)", received.X, received.Y)
	}
}

func TestMessengerReceiveDiscardsBadCoordinate(t *testing.T) {
	router := NewRouter()
	messenger := NewMessenger(&recordingSender{}, router)

	var invoked bool
	router.On(KindAttack, func(Message) { invoked = true })

	messenger.Receive(KeyAttack, 200)

	if invoked {
		t.Fatal("out of range coordinate must be discarded before dispatch")
	}
}
