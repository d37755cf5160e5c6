package wire

import "log"

type Handler func(Message)

// Router holds the per-kind handler registries. It is a value owned by
// the transport adapter and passed by reference to every component that
// registers or dispatches; there is no hidden global registry. Handlers
// cannot be unregistered and stay live for the process lifetime.
type Router struct {
	handlers map[uint8][]Handler
}

func NewRouter() *Router {
	return &Router{
		handlers: make(map[uint8][]Handler),
	}
}

func (r *Router) On(kind uint8, handler Handler) {
	r.handlers[kind] = append(r.handlers[kind], handler)
}

// Dispatch invokes every registered handler for the message kind in
// registration order. A kind with no handlers drops the message.
func (r *Router) Dispatch(msg Message) {
	for _, handler := range r.handlers[msg.Kind()] {
		handler(msg)
	}
}

// Sender is the outbound half of the transport boundary.
type Sender interface {
	Broadcast(key string, value int64) error
}

// Messenger sits at the codec boundary: it encodes outbound messages
// onto the sender and decodes inbound wire pairs into the router.
type Messenger struct {
	sender Sender
	router *Router
}

func NewMessenger(sender Sender, router *Router) *Messenger {
	return &Messenger{
		sender: sender,
		router: router,
	}
}

func (m *Messenger) Router() *Router {
	return m.router
}

func (m *Messenger) Send(msg Message) error {
	key, value, err := Encode(msg)
	if err != nil {
		return err
	}
	return m.sender.Broadcast(key, value)
}

// Receive decodes one inbound wire pair and dispatches it. A payload
// that cannot be decoded is logged and discarded; it never escalates.
func (m *Messenger) Receive(key string, value int64) {
	msg, err := Decode(key, value)
	if err != nil {
		log.Printf("discarding inbound pair (%s, %d): %v", key, value, err)
		return
	}
	m.router.Dispatch(msg)
}
