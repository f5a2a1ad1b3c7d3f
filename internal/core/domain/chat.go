package domain

import (
	"strings"
	"time"
)

// DefaultChatFallback is shown when a chat request fails without a
// server-provided reason.
const DefaultChatFallback = "Sorry, there was an error. Please try again."

// Role identifies who authored a chat message.
type Role string

// Chat roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// ChatMessage is one entry in a conversation transcript.
// Messages are never persisted.
type ChatMessage struct {
	// Role is the author of the message.
	Role Role

	// Text is the message body. Assistant text may contain markdown.
	Text string

	// At is when the entry was appended.
	At time.Time
}

// Conversation is an ephemeral chat transcript.
//
// Sending is an explicit two-phase transition: Begin appends the user entry
// and marks the conversation pending; Resolve appends exactly one assistant
// or error entry and clears the pending mark.
type Conversation struct {
	messages []ChatMessage
	pending  string
	waiting  bool
	fallback string
	now      func() time.Time
}

// NewConversation creates an empty conversation.
// fallback is the error text used when a failure carries no server reason;
// empty selects DefaultChatFallback.
func NewConversation(fallback string) *Conversation {
	if fallback == "" {
		fallback = DefaultChatFallback
	}
	return &Conversation{
		fallback: fallback,
		now:      time.Now,
	}
}

// Begin records the user's query and marks the conversation pending.
// It returns the trimmed query to send.
func (c *Conversation) Begin(query string) (string, error) {
	if c.waiting {
		return "", ErrRequestPending
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return "", ErrEmptyQuery
	}
	c.messages = append(c.messages, ChatMessage{Role: RoleUser, Text: q, At: c.now()})
	c.pending = q
	c.waiting = true
	return q, nil
}

// Resolve completes the pending exchange with the backend's outcome.
// Exactly one entry is appended. Resolving with nothing pending is a no-op
// and returns false.
func (c *Conversation) Resolve(reply string, err error) bool {
	if !c.waiting {
		return false
	}
	c.waiting = false
	c.pending = ""

	if err != nil {
		c.messages = append(c.messages, ChatMessage{
			Role: RoleError,
			Text: UserMessage(err, c.fallback),
			At:   c.now(),
		})
		return true
	}
	c.messages = append(c.messages, ChatMessage{Role: RoleAssistant, Text: reply, At: c.now()})
	return true
}

// Pending returns true while a query awaits its reply.
func (c *Conversation) Pending() bool {
	return c.waiting
}

// PendingQuery returns the query awaiting a reply, if any.
func (c *Conversation) PendingQuery() string {
	return c.pending
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []ChatMessage {
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of entries.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent entry, or false if the transcript is empty.
func (c *Conversation) Last() (ChatMessage, bool) {
	if len(c.messages) == 0 {
		return ChatMessage{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Reset clears the transcript and any pending state.
func (c *Conversation) Reset() {
	c.messages = nil
	c.pending = ""
	c.waiting = false
}
