// Package multicast carries wire pairs over UDP multicast on the local
// network. The numeric broadcast group selects the multicast address,
// so only peers in the same group observe each other.
package multicast

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/ipv4"

	"github.com/hamedsk/gridstrike/transport"
)

const (
	multicastPort  = 45454
	readBufferSize = 65536
)

// GroupAddress derives the group-scoped multicast address.
func GroupAddress(group uint8) string {
	return fmt.Sprintf("239.255.13.%d:%d", group, multicastPort)
}

type Multicast struct {
	conn *net.UDPConn
	addr *net.UDPAddr

	// Multicast loopback delivers our own datagrams back to us; the
	// instance id filters them out so the sender never hears itself.
	instanceId string

	mu     sync.Mutex
	recv   transport.Receiver
	closed bool
}

func Join(group uint8) (*Multicast, error) {
	addr, err := net.ResolveUDPAddr("udp4", GroupAddress(group))
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenMulticastUDP("udp4", nil, addr)
	if err != nil {
		return nil, err
	}

	p4 := ipv4.NewPacketConn(conn)
	if err := p4.SetMulticastLoopback(true); err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.SetReadBuffer(readBufferSize); err != nil {
		conn.Close()
		return nil, err
	}

	m := &Multicast{
		conn:       conn,
		addr:       addr,
		instanceId: uuid.NewString()[:8],
	}
	go m.readLoop()
	return m, nil
}

func (m *Multicast) Broadcast(key string, value int64) error {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil
	}

	datagram := fmt.Sprintf("%s %s %d", m.instanceId, key, value)
	_, err := m.conn.WriteToUDP([]byte(datagram), m.addr)
	return err
}

func (m *Multicast) Subscribe(recv transport.Receiver) {
	m.mu.Lock()
	m.recv = recv
	m.mu.Unlock()
}

func (m *Multicast) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return m.conn.Close()
}

func (m *Multicast) readLoop() {
	buf := make([]byte, 1024)
	for {
		n, _, err := m.conn.ReadFromUDP(buf)
		if err != nil {
			m.mu.Lock()
			closed := m.closed
			m.mu.Unlock()
			if !closed {
				log.Printf("multicast read error: %v", err)
			}
			return
		}

		sender, key, value, ok := parseDatagram(string(buf[:n]))
		if !ok || sender == m.instanceId {
			continue
		}

		m.mu.Lock()
		recv := m.recv
		m.mu.Unlock()
		if recv != nil {
			recv(key, value)
		}
	}
}

func parseDatagram(datagram string) (sender, key string, value int64, ok bool) {
	fields := strings.Fields(strings.TrimSpace(datagram))
	if len(fields) != 3 {
		return "", "", 0, false
	}

	value, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", "", 0, false
	}
	return fields[0], fields[1], value, true
}

var _ transport.Transport = (*Multicast)(nil)
