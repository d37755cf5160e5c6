package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID

	// Join a numeric broadcast group; sessions only observe publishes
	// from other members of the same group.
	CodeJoinGroup

	// Publish one (key, value) wire pair to the session's group.
	CodePublish

	// A pair relayed from another member of the group.
	CodeRelay

	CodeInvalidSignal

	// The req msg does not contain a "code" field.
	CodeSignalAbsent

	// Publish attempted before joining a group.
	CodeGroupNotJoined
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
