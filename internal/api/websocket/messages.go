package websocket

import "time"

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Point table generation
	MessageTypeTableGenerated MessageType = "table_generated"
	MessageTypeTableFailed    MessageType = "table_failed"

	// System messages
	MessageTypeSystemStatus MessageType = "system_status"

	// Connection handshake
	MessageTypeAuthSuccess MessageType = "auth_success"
	MessageTypeAuthFailed  MessageType = "auth_failed"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// TableGeneratedData describes a successfully built point table.
type TableGeneratedData struct {
	Station    string `json:"station"`
	TableName  string `json:"table_name"`
	PointCount int    `json:"point_count"`
	RackCount  uint32 `json:"rack_count"`
	Source     string `json:"source"`
}

type TableFailedData struct {
	Station string `json:"station"`
	Code    string `json:"code"`
	Error   string `json:"error"`
	Source  string `json:"source"`
}

type SystemStatusData struct {
	State string `json:"state"`
}

// NewMessage creates a new message with current timestamp
func NewMessage(msgType MessageType, data interface{}) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewTableGeneratedMessage(data TableGeneratedData) Message {
	return NewMessage(MessageTypeTableGenerated, data)
}

func NewTableFailedMessage(station, code, source string, err error) Message {
	return NewMessage(MessageTypeTableFailed, TableFailedData{
		Station: station,
		Code:    code,
		Error:   err.Error(),
		Source:  source,
	})
}

func NewSystemStatusMessage(state string) Message {
	return NewMessage(MessageTypeSystemStatus, SystemStatusData{State: state})
}
