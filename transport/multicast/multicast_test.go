package multicast

import "testing"

func TestGroupAddress(t *testing.T) {
	tests := []struct {
		name     string
		group    uint8
		expected string
	}{
		{name: "default group", group: 64, expected: "239.255.13.64:45454"},
		{name: "group zero", group: 0, expected: "239.255.13.0:45454"},
		{name: "highest group", group: 255, expected: "239.255.13.255:45454"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := GroupAddress(test.group); got != test.expected {
				t.Fatalf("expected addr: %s\tgot: %s", test.expected, got)
			}
		})
	}
}

func TestParseDatagram(t *testing.T) {
	tests := []struct {
		name           string
		datagram       string
		expectedSender string
		expectedKey    string
		expectedValue  int64
		expectedOk     bool
	}{
		{name: "valid pair", datagram: "ab12cd34 ca 17", expectedSender: "ab12cd34", expectedKey: "ca", expectedValue: 17, expectedOk: true},
		{name: "trailing newline", datagram: "ab12cd34 nj 42\n", expectedSender: "ab12cd34", expectedKey: "nj", expectedValue: 42, expectedOk: true},
		{name: "missing field", datagram: "ab12cd34 ca", expectedOk: false},
		{name: "non numeric value", datagram: "ab12cd34 ca x", expectedOk: false},
		{name: "empty", datagram: "", expectedOk: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sender, key, value, ok := parseDatagram(test.datagram)
			if ok != test.expectedOk {
				t.Fatalf("expected ok: %t\tgot: %t", test.expectedOk, ok)
			}
			if !ok {
				return
			}
			if sender != test.expectedSender || key != test.expectedKey || value != test.expectedValue {
				t.Fatalf("expected (%s, %s, %d)\tgot: (%s, %s, %d)",
					test.expectedSender, test.expectedKey, test.expectedValue, sender, key, value)
			}
		})
	}
}
