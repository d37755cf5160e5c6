package test

import (
	"testing"
	"time"

	"github.com/hamedsk/gridstrike/transport/wsbridge"
)

type relayedPair struct {
	key   string
	value int64
}

// Two bridges on their own group round-trip one wire pair through the
// relay. The sender must not observe its own broadcast.
func TestBridgeRoundTrip(t *testing.T) {
	const bridgeGroup uint8 = 9

	sender, err := wsbridge.Dial(testWsUrl, bridgeGroup)
	if err != nil {
		t.Fatal(err)
	}
	defer sender.Close()

	receiver, err := wsbridge.Dial(testWsUrl, bridgeGroup)
	if err != nil {
		t.Fatal(err)
	}
	defer receiver.Close()

	received := make(chan relayedPair, 4)
	receiver.Subscribe(func(key string, value int64) {
		received <- relayedPair{key: key, value: value}
	})

	echoed := make(chan relayedPair, 4)
	sender.Subscribe(func(key string, value int64) {
		echoed <- relayedPair{key: key, value: value}
	})

	if err := sender.Broadcast("ns", 0); err != nil {
		t.Fatal(err)
	}

	select {
	case pair := <-received:
		if pair.key != "ns" || pair.value != 0 {
			t.Fatalf("expected pair: (ns, 0)\t got: (%s, %d)", pair.key, pair.value)
		}
	case <-time.After(time.Second * 2):
		t.Fatal("relayed pair never reached the other bridge")
	}

	select {
	case pair := <-echoed:
		t.Fatalf("sender observed its own pair: (%s, %d)", pair.key, pair.value)
	case <-time.After(time.Millisecond * 300):
	}
}
