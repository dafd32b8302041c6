package metrics

// Label keys shared by every collector.
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelResult = "result"
	LabelWinner = "winner"
)

// Move outcomes.
const (
	MoveAccepted = "accepted"
	MoveRejected = "rejected"
	MoveFailed   = "failed"
)

// MessageUnknown labels inbound frames whose type has no handler.
const MessageUnknown = "unknown"

// MethodOther labels REST requests whose method is not a standard HTTP method.
const MethodOther = "other"
