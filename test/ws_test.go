package test

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
	mc "github.com/hamedsk/gridstrike/models/connection"
)

const testGroup uint8 = 7

type Test[T, K any] struct {
	name string

	expectedCode uint8

	reqPayload          T
	respPayload         K // Used to unmarshal the response
	expectedRespPayload K // To compare to data unmarshaled in respPayload

	conn *websocket.Conn
}

func TestInvalidCode(t *testing.T) {
	tests := []Test[mc.Message[mc.NoPayload], mc.Message[mc.NoPayload]]{
		{
			name:         "random invalid code first",
			expectedCode: mc.CodeInvalidSignal,
			reqPayload:   mc.NewMessage[mc.NoPayload](255),
			respPayload:  mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal),
			conn:         FirstConn,
		},
		{
			name:         "random invalid code second",
			expectedCode: mc.CodeInvalidSignal,
			reqPayload:   mc.NewMessage[mc.NoPayload](200),
			respPayload:  mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal),
			conn:         SecondConn,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.conn.WriteJSON(test.reqPayload); err != nil {
				t.Fatal(err)
			}

			if err := test.conn.ReadJSON(&test.respPayload); err != nil {
				t.Fatal(err)
			}

			if test.respPayload.Code != test.expectedCode {
				t.Fatalf("expected status: %d\t got: %d", test.expectedCode, test.respPayload.Code)
			}
		})
	}
}

func TestSignalAbsent(t *testing.T) {
	if err := FirstConn.WriteMessage(websocket.TextMessage, []byte("this is not json")); err != nil {
		t.Fatal(err)
	}

	var resp mc.Message[mc.NoPayload]
	if err := FirstConn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}

	if resp.Code != mc.CodeSignalAbsent {
		t.Fatalf("expected status: %d\t got: %d", mc.CodeSignalAbsent, resp.Code)
	}
}

func TestPublishBeforeJoin(t *testing.T) {
	req := mc.NewMessage[mc.ReqPublish](mc.CodePublish)
	req.AddPayload(mc.ReqPublish{Key: "nj", Value: 42})

	if err := FirstConn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var resp mc.Message[mc.NoPayload]
	if err := FirstConn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}

	if resp.Code != mc.CodeGroupNotJoined {
		t.Fatalf("expected status: %d\t got: %d", mc.CodeGroupNotJoined, resp.Code)
	}
}

func TestJoinGroup(t *testing.T) {
	tests := []Test[mc.Message[mc.ReqJoinGroup], mc.Message[mc.RespJoinGroup]]{
		{
			name:         "first joins empty group",
			expectedCode: mc.CodeJoinGroup,
			reqPayload: mc.Message[mc.ReqJoinGroup]{Code: mc.CodeJoinGroup, Payload: mc.ReqJoinGroup{
				Group: testGroup,
			}},
			respPayload:         mc.NewMessage[mc.RespJoinGroup](mc.CodeJoinGroup),
			expectedRespPayload: mc.Message[mc.RespJoinGroup]{Payload: mc.RespJoinGroup{Group: testGroup, Peers: 1}},
			conn:                FirstConn,
		},
		{
			name:         "second joins same group",
			expectedCode: mc.CodeJoinGroup,
			reqPayload: mc.Message[mc.ReqJoinGroup]{Code: mc.CodeJoinGroup, Payload: mc.ReqJoinGroup{
				Group: testGroup,
			}},
			respPayload:         mc.NewMessage[mc.RespJoinGroup](mc.CodeJoinGroup),
			expectedRespPayload: mc.Message[mc.RespJoinGroup]{Payload: mc.RespJoinGroup{Group: testGroup, Peers: 2}},
			conn:                SecondConn,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.conn.WriteJSON(test.reqPayload); err != nil {
				t.Fatal(err)
			}

			if err := test.conn.ReadJSON(&test.respPayload); err != nil {
				t.Fatal(err)
			}

			if test.respPayload.Code != test.expectedCode {
				t.Fatalf("expected status: %d\t got: %d", test.expectedCode, test.respPayload.Code)
			}

			if test.respPayload.Payload != test.expectedRespPayload.Payload {
				t.Fatalf("expected payload: %+v\t got: %+v", test.expectedRespPayload.Payload, test.respPayload.Payload)
			}
		})
	}
}

func TestPublishFansOutToGroup(t *testing.T) {
	req := mc.NewMessage[mc.ReqPublish](mc.CodePublish)
	req.AddPayload(mc.ReqPublish{Key: "ca", Value: 17})

	if err := FirstConn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var relayed mc.Message[mc.RespRelay]
	if err := SecondConn.ReadJSON(&relayed); err != nil {
		t.Fatal(err)
	}

	if relayed.Code != mc.CodeRelay {
		t.Fatalf("expected status: %d\t got: %d", mc.CodeRelay, relayed.Code)
	}
	if relayed.Payload.Key != "ca" || relayed.Payload.Value != 17 {
		t.Fatalf("expected pair: (ca, 17)\t got: (%s, %d)", relayed.Payload.Key, relayed.Payload.Value)
	}

	// The publisher must never see its own pair echoed back.
	_ = FirstConn.SetReadDeadline(time.Now().Add(time.Millisecond * 500))
	var echoed mc.Message[mc.RespRelay]
	if err := FirstConn.ReadJSON(&echoed); err == nil {
		t.Fatalf("publisher received its own pair back: %+v", echoed)
	}
	_ = FirstConn.SetReadDeadline(time.Time{})
}

func TestPublishInvalidPayload(t *testing.T) {
	badReq := struct {
		Code    uint8 `json:"code"`
		Payload struct {
			Key   int64  `json:"key"`
			Value string `json:"value"`
		} `json:"payload"`
	}{Code: mc.CodePublish}
	badReq.Payload.Key = 5
	badReq.Payload.Value = "seventeen"

	if err := SecondConn.WriteJSON(badReq); err != nil {
		t.Fatal(err)
	}

	var resp mc.Message[mc.NoPayload]
	if err := SecondConn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}

	if resp.Code != mc.CodeInvalidSignal {
		t.Fatalf("expected status: %d\t got: %d", mc.CodeInvalidSignal, resp.Code)
	}
}
