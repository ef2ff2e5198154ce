package errors

import (
	"sync"
	"time"
)

// maxTUIMessages bounds the history kept for the footer.
const maxTUIMessages = 50

// MessageType classifies a TUI message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// Message is one entry shown in the TUI footer.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// TUIHandler buffers messages for display instead of printing them, since
// terminal writes would tear the alt screen.
type TUIHandler struct {
	mu       sync.RWMutex
	messages []Message
	onAdd    func(msg Message)
	now      func() time.Time
}

var _ ErrorHandler = (*TUIHandler)(nil)

// NewTUIHandler creates a handler; onAdd, if non-nil, is called for every
// new message.
func NewTUIHandler(onAdd func(msg Message)) *TUIHandler {
	return &TUIHandler{onAdd: onAdd, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

func (h *TUIHandler) add(text string, msgType MessageType) {
	h.mu.Lock()
	msg := Message{Text: text, Type: msgType, Timestamp: h.now()}
	h.messages = append(h.messages, msg)
	if len(h.messages) > maxTUIMessages {
		h.messages = h.messages[len(h.messages)-maxTUIMessages:]
	}
	onAdd := h.onAdd
	h.mu.Unlock()

	if onAdd != nil {
		onAdd(msg)
	}
}

// Latest returns the newest message.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// All returns a copy of the buffered messages, oldest first.
func (h *TUIHandler) All() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Clear drops all buffered messages.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
