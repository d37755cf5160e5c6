// Package wsbridge adapts the relay server into a Transport: every
// publish is fanned out by the relay to the other members of the
// joined group.
package wsbridge

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	mc "github.com/hamedsk/gridstrike/models/connection"
	"github.com/hamedsk/gridstrike/transport"
)

var dialer = websocket.Dialer{
	HandshakeTimeout: 10 * time.Second,
}

type Bridge struct {
	conn      *websocket.Conn
	sessionId string
	group     uint8

	mu     sync.Mutex
	recv   transport.Receiver
	closed bool
}

// Dial connects to a relay, waits for the session id and joins the
// group. The read loop starts immediately; relayed pairs arriving
// before Subscribe are lost, which the medium permits.
func Dial(url string, group uint8) (*Bridge, error) {
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	var respSessionId mc.Message[mc.RespSessionId]
	if err := conn.ReadJSON(&respSessionId); err != nil {
		conn.Close()
		return nil, err
	}

	joinReq := mc.NewMessage[mc.ReqJoinGroup](mc.CodeJoinGroup)
	joinReq.AddPayload(mc.ReqJoinGroup{Group: group})
	if err := conn.WriteJSON(joinReq); err != nil {
		conn.Close()
		return nil, err
	}

	var respJoin mc.Message[mc.RespJoinGroup]
	if err := conn.ReadJSON(&respJoin); err != nil {
		conn.Close()
		return nil, err
	}
	log.Printf("joined relay group %d with %d member(s)", respJoin.Payload.Group, respJoin.Payload.Peers)

	b := &Bridge{
		conn:      conn,
		sessionId: respSessionId.Payload.SessionID,
		group:     group,
	}
	go b.readLoop()
	return b, nil
}

func (b *Bridge) SessionId() string {
	return b.sessionId
}

func (b *Bridge) Broadcast(key string, value int64) error {
	req := mc.NewMessage[mc.ReqPublish](mc.CodePublish)
	req.AddPayload(mc.ReqPublish{Key: key, Value: value})

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	return b.conn.WriteJSON(req)
}

func (b *Bridge) Subscribe(recv transport.Receiver) {
	b.mu.Lock()
	b.recv = recv
	b.mu.Unlock()
}

func (b *Bridge) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	return b.conn.Close()
}

func (b *Bridge) readLoop() {
	for {
		var msg mc.Message[mc.RespRelay]
		if err := b.conn.ReadJSON(&msg); err != nil {
			b.mu.Lock()
			closed := b.closed
			b.mu.Unlock()
			if !closed {
				log.Printf("relay read loop ended: %v", err)
			}
			return
		}

		// The relay answers some requests with non-relay codes on the
		// same conn; only relayed pairs reach the receiver.
		if msg.Code != mc.CodeRelay {
			continue
		}

		b.mu.Lock()
		recv := b.recv
		b.mu.Unlock()
		if recv != nil {
			recv(msg.Payload.Key, msg.Payload.Value)
		}
	}
}

var _ transport.Transport = (*Bridge)(nil)
