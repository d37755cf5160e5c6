package connection

type NoPayload bool

type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

type RespErr struct {
	ErrorDetails string `json:"errorDetails,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{ErrorDetails: errorDetails, Message: message}
}

type RespSessionId struct {
	SessionID string `json:"sessionID"`
}

type ReqJoinGroup struct {
	Group uint8 `json:"group"`
}

type RespJoinGroup struct {
	Group uint8 `json:"group"`
	Peers int   `json:"peers"`
}

// ReqPublish and RespRelay carry one wire pair through the relay. The
// relay never interprets the pair beyond its analytics counters; it
// only fans it out to the rest of the group.
type ReqPublish struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

type RespRelay struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}
