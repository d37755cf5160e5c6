package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hamedsk/gridstrike/db"
	mc "github.com/hamedsk/gridstrike/models/connection"
	"github.com/hamedsk/gridstrike/transport"
	"github.com/sqlc-dev/pqtype"
)

// Wire keys the relay itself cares about: a relayed start-game or
// attack pair bumps the analytics counters. Everything else passes
// through uninspected.
const (
	analyticsKeyStartGame = "ng"
	analyticsKeyAttack    = "ca"
)

var upgrader = websocket.Upgrader{

	// good average time since this is not a high-latency operation
	// such as video streaming
	HandshakeTimeout: time.Second * 5,

	// probably more than enough but this is a good average size
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	q              db.Querier
	ipnet          net.IPNet
}

// NewRequestProcessor builds the relay handler. A nil querier disables
// analytics.
func NewRequestProcessor(sessionManager mc.SessionManager, q db.Querier) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		q:              q,
	}

	rp = rp.mustGetServerIpNet()
	return rp
}

func (rp RequestProcessor) mustGetServerIpNet() RequestProcessor {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			panic(err)
		}

		for _, addr := range addrs {
			var ipnet *net.IPNet
			var ip net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ipnet = v
				ip = v.IP

			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				rp.ipnet = *ipnet
				return rp
			}
		}
	}

	panic("ipnet could not be found!")
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
	go rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	defer func() {
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(session)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := rp.sessionManager.WriteToSessionConn(session, resp); err != nil {
		return
	}

	serverPqtypeInet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// Retries are already spent at this point; the session
			// connection could not be recovered.
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch signal.Code {

		case mc.CodeJoinGroup:
			var req mc.Message[mc.ReqJoinGroup]
			group := transport.DefaultGroup
			if err := json.Unmarshal(payload, &req); err == nil {
				group = req.Payload.Group
			}

			peers := rp.sessionManager.JoinGroup(session, group)

			respJoin := mc.NewMessage[mc.RespJoinGroup](mc.CodeJoinGroup)
			respJoin.AddPayload(mc.RespJoinGroup{Group: group, Peers: peers})
			if err := rp.sessionManager.WriteToSessionConn(session, respJoin); err != nil {
				break sessionLoop
			}

		case mc.CodePublish:
			var req mc.Message[mc.ReqPublish]
			if err := json.Unmarshal(payload, &req); err != nil {
				respInvalid := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
				respInvalid.AddError(err.Error(), "publish payload must hold 'key' and 'value'")
				if err := rp.sessionManager.WriteToSessionConn(session, respInvalid); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			relayMsg := mc.NewMessage[mc.RespRelay](mc.CodeRelay)
			relayMsg.AddPayload(mc.RespRelay{Key: req.Payload.Key, Value: req.Payload.Value})

			if err := rp.sessionManager.RelayToGroup(session, relayMsg); err != nil {
				respNotJoined := mc.NewMessage[mc.NoPayload](mc.CodeGroupNotJoined)
				respNotJoined.AddError(err.Error(), "join a group before publishing")
				if err := rp.sessionManager.WriteToSessionConn(session, respNotJoined); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			rp.recordAnalytics(req.Payload.Key, serverPqtypeInet)

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp RequestProcessor) recordAnalytics(key string, serverIp pqtype.Inet) {
	if rp.q == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), db.QuerierCtxTimeout)
	defer cancel()

	var err error
	switch key {
	case analyticsKeyStartGame:
		err = rp.q.IncrementGamesStartedCount(ctx, serverIp)
	case analyticsKeyAttack:
		err = rp.q.IncrementShotsRelayedCount(ctx, serverIp)
	default:
		return
	}

	if err != nil {
		// for now not killing the session for it
		log.Println(err)
	}
}
