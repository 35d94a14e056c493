package server

import (
	"encoding/json"
	"time"
)

// MessageType represents a WebSocket message type
type MessageType string

const (
	// Client to server messages
	MessageTypeDeal  MessageType = "deal"
	MessageTypeHit   MessageType = "hit"
	MessageTypeStand MessageType = "stand"

	// Server to client messages
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes carried in ErrorData
const (
	ErrCodeInvalidMessage   = "invalid_message"
	ErrCodeUnknownType      = "unknown_message_type"
	ErrCodeActionNotAllowed = "action_not_allowed"
	ErrCodeInternal         = "internal_error"
)

// Message represents the base WebSocket message structure. Client messages
// only need Type; Data is unused for the three player actions.
type Message struct {
	Type      MessageType     `json:"type"`
	Session   string          `json:"session,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// ErrorData is the payload of an error message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, session string, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Session:   session,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}
