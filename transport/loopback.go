package transport

import "sync"

// Loopback is an in-process transport pair. Each endpoint's broadcasts
// are delivered synchronously to the other endpoint only, mirroring the
// group scoping and the sender-never-hears-itself property of the real
// medium.
type Loopback struct {
	mu     sync.Mutex
	peer   *Loopback
	recv   Receiver
	closed bool
}

func NewLoopbackPair() (*Loopback, *Loopback) {
	a := &Loopback{}
	b := &Loopback{}
	a.peer = b
	b.peer = a
	return a, b
}

func (l *Loopback) Broadcast(key string, value int64) error {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return nil
	}

	l.peer.mu.Lock()
	recv := l.peer.recv
	closed = l.peer.closed
	l.peer.mu.Unlock()

	// An unsubscribed or closed peer simply loses the pair.
	if recv != nil && !closed {
		recv(key, value)
	}
	return nil
}

func (l *Loopback) Subscribe(recv Receiver) {
	l.mu.Lock()
	l.recv = recv
	l.mu.Unlock()
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	return nil
}

var _ Transport = (*Loopback)(nil)
