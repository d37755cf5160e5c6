package connection

import (
	"encoding/base64"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/hamedsk/gridstrike/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically()

	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)

	JoinGroup(session *Session, group uint8) int
	RelayToGroup(sender *Session, msg interface{}) error

	WriteToSessionConn(session *Session, msg interface{}) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

// GroupSessionManager keys sessions by id and by broadcast group. A
// relayed publish fans out to every member of the sender's group except
// the sender itself; the medium never echoes a broadcast back.
type GroupSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	groups          map[uint8]map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*GroupSessionManager)(nil)

func NewGroupSessionManager() *GroupSessionManager {
	initMapSize := 10

	return &GroupSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		groups:          make(map[uint8]map[string]*Session),
		cleanupInterval: time.Minute * 20,
	}
}

func (gsm *GroupSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))

	gsm.mu.Lock()
	defer gsm.mu.Unlock()

	gsm.sessions[sessionId] = NewSession(sessionId, conn)
	return gsm.sessions[sessionId]
}

func (gsm *GroupSessionManager) FindSession(sessionId string) (*Session, error) {
	gsm.mu.RLock()
	defer gsm.mu.RUnlock()

	session, prs := gsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}
	return session, nil
}

// JoinGroup moves the session into a group, leaving any previous one,
// and returns the number of members the group now holds.
func (gsm *GroupSessionManager) JoinGroup(session *Session, group uint8) int {
	gsm.mu.Lock()
	defer gsm.mu.Unlock()

	if session.inGroup {
		gsm.removeFromGroup(session)
	}

	members, prs := gsm.groups[group]
	if !prs {
		members = make(map[string]*Session, 2)
		gsm.groups[group] = members
	}
	members[session.id] = session

	session.group = group
	session.inGroup = true
	return len(members)
}

// caller must hold the lock
func (gsm *GroupSessionManager) removeFromGroup(session *Session) {
	members, prs := gsm.groups[session.group]
	if !prs {
		return
	}
	delete(members, session.id)
	if len(members) == 0 {
		delete(gsm.groups, session.group)
	}
	session.inGroup = false
}

// RelayToGroup writes msg to every other member of the sender's group.
// A broken member conn is logged and skipped so one bad peer cannot
// stall the rest of the group.
func (gsm *GroupSessionManager) RelayToGroup(sender *Session, msg interface{}) error {
	if !sender.inGroup {
		return cerr.ErrSessionNotInGroup(sender.id)
	}

	gsm.mu.RLock()
	members := make([]*Session, 0, len(gsm.groups[sender.group]))
	for _, member := range gsm.groups[sender.group] {
		if member.id == sender.id {
			continue
		}
		members = append(members, member)
	}
	gsm.mu.RUnlock()

	for _, member := range members {
		if err := member.writeToConnWithRetry(msg); err != nil {
			log.Printf("failed to relay to session %s: %v", member.id, err)
		}
	}
	return nil
}

func (gsm *GroupSessionManager) TerminateSession(session *Session) {
	gsm.mu.Lock()
	defer gsm.mu.Unlock()

	if session.inGroup {
		gsm.removeFromGroup(session)
	}
	delete(gsm.sessions, session.id)
}

// To ensure that there are no dangling connections, sessions older
// than the cleanup interval are marked stale and deleted.
func (gsm *GroupSessionManager) CleanupPeriodically() {
	assumedClosedConns := 10

	for {
		time.Sleep(gsm.cleanupInterval)

		gsm.mu.Lock()
		toDelete := make([]*Session, 0, assumedClosedConns)

		for _, session := range gsm.sessions {
			if time.Since(session.createdAt) > gsm.cleanupInterval {
				toDelete = append(toDelete, session)
			}
		}

		for _, session := range toDelete {
			if session.inGroup {
				gsm.removeFromGroup(session)
			}
			delete(gsm.sessions, session.id)
			log.Printf("removed stale session: %s", session.id)
		}
		gsm.mu.Unlock()
	}
}

func (gsm *GroupSessionManager) WriteToSessionConn(session *Session, msg interface{}) error {
	return session.writeToConnWithRetry(msg)
}

func (gsm *GroupSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		default:
			return -1, []byte{}, err
		}
	}
}
