package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message represents a Kafka message with metadata
type Message struct {
	Key       string            // Partition key (e.g., subject_id)
	Value     []byte            // Message payload (JSON-encoded)
	Headers   map[string]string // Message headers
	Topic     string            // Topic name
	Timestamp time.Time         // Message timestamp
}

// Header keys shared by all stayhub services
const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderOriginalTopic = "original-topic"
)

// MessageBuilder provides a fluent interface for building messages
type MessageBuilder struct {
	msg Message
}

// NewMessage creates a new MessageBuilder
func NewMessage() *MessageBuilder {
	return &MessageBuilder{
		msg: Message{
			Headers:   make(map[string]string),
			Timestamp: time.Now(),
		},
	}
}

// WithKey sets the message key (for partition routing)
func (mb *MessageBuilder) WithKey(key string) *MessageBuilder {
	mb.msg.Key = key
	return mb
}

// WithValue sets the message value (will be JSON-encoded)
func (mb *MessageBuilder) WithValue(value any) *MessageBuilder {
	data, err := json.Marshal(value)
	if err != nil {
		mb.msg.Value = nil
		return mb
	}
	mb.msg.Value = data
	return mb
}

// WithHeader adds a custom header
func (mb *MessageBuilder) WithHeader(key, value string) *MessageBuilder {
	mb.msg.Headers[key] = value
	return mb
}

// WithEventType sets the event type
func (mb *MessageBuilder) WithEventType(eventType string) *MessageBuilder {
	mb.msg.Headers[HeaderEventType] = eventType
	return mb
}

// WithSource sets the source service
func (mb *MessageBuilder) WithSource(source string) *MessageBuilder {
	mb.msg.Headers[HeaderSource] = source
	return mb
}

// Build returns the constructed message
func (mb *MessageBuilder) Build() Message {
	if mb.msg.Headers[HeaderEventID] == "" {
		mb.msg.Headers[HeaderEventID] = uuid.New().String()
	}

	if mb.msg.Headers[HeaderTimestamp] == "" {
		mb.msg.Headers[HeaderTimestamp] = mb.msg.Timestamp.Format(time.RFC3339)
	}

	return mb.msg
}

// DecodeValue decodes the message value into the provided struct
func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

// GetHeader retrieves a header value
func (m *Message) GetHeader(key string) (string, bool) {
	value, exists := m.Headers[key]
	return value, exists
}

// GetEventID returns the event ID header
func (m *Message) GetEventID() string {
	return m.Headers[HeaderEventID]
}
