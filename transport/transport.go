// Package transport defines the broadcast medium boundary. The medium
// is group scoped, unordered and unreliable: a broadcast may be lost
// and carries no delivery or ordering guarantee.
package transport

const DefaultGroup uint8 = 64

// Receiver consumes one inbound wire pair.
type Receiver func(key string, value int64)

type Transport interface {
	// Broadcast emits one wire pair to every other member of the group.
	// The sender never observes its own broadcasts.
	Broadcast(key string, value int64) error

	// Subscribe registers the single inbound receiver. Pairs arriving
	// before a receiver is set are dropped, which the medium permits.
	Subscribe(recv Receiver)

	Close() error
}
