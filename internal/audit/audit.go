// Package audit delivers best-effort log entries to a remote audit service.
//
// Notify never blocks on the network and never reports failure: entries are
// published on an in-process watermill channel and a detached forwarder posts
// them to the configured Sink.
package audit

import (
	"encoding/json"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Stack is the stack name attached to every backend entry.
const Stack = "backend"

// Levels used by the service.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Notifier is the one-way audit interface.
type Notifier interface {
	Notify(stack, level, pkg, message string)
}

// Entry is the payload accepted by the audit service.
type Entry struct {
	Stack   string `json:"stack"`
	Level   string `json:"level"`
	Package string `json:"package"`
	Message string `json:"message"`
}

// NewEntry lowercases everything but the message.
func NewEntry(stack, level, pkg, message string) Entry {
	return Entry{
		Stack:   strings.ToLower(stack),
		Level:   strings.ToLower(level),
		Package: strings.ToLower(pkg),
		Message: message,
	}
}

// EntryToMessage converts an entry to a watermill message.
func EntryToMessage(e Entry) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("level", e.Level)
	msg.Metadata.Set("package", e.Package)
	return msg, nil
}

// MessageToEntry extracts the entry from a watermill message.
func MessageToEntry(msg *message.Message) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Nop discards every entry.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(_, _, _, _ string) {}
