// Package memory provides bounded conversation history
package memory

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/wouternijenhuis/CogniChain/pkg/types"
)

// Unlimited disables history trimming
const Unlimited = -1

// Conversation is an ordered, bounded message log. System messages are
// never evicted; when maxMessages > 0 the oldest non-system messages
// are trimmed so at most maxMessages of them remain. Any non-positive
// limit, including the Unlimited sentinel and zero, disables trimming.
// Safe for concurrent use.
type Conversation struct {
	mu          sync.RWMutex
	messages    []types.Message
	maxMessages int
	clock       types.Clock
}

// Option configures a Conversation
type Option func(*Conversation)

// WithClock sets the clock used for message timestamps
func WithClock(clock types.Clock) Option {
	return func(c *Conversation) {
		c.clock = clock
	}
}

// New creates a conversation bounded to maxMessages non-system messages
func New(maxMessages int, opts ...Option) *Conversation {
	c := &Conversation{
		messages:    make([]types.Message, 0),
		maxMessages: maxMessages,
		clock:       types.NewRealClock(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AddMessage appends a message with the given role and the current
// timestamp, then trims. It always succeeds; trimming may evict older
// non-system messages.
func (c *Conversation) AddMessage(role types.Role, content string) {
	c.AddMessageWithMetadata(role, content, nil)
}

// AddMessageWithMetadata is AddMessage with caller-defined metadata
// attached to the stored message.
func (c *Conversation) AddMessageWithMetadata(role types.Role, content string, metadata map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, types.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: c.clock.Now(),
		Metadata:  metadata,
	})
	c.trim()
}

// AddSystemMessage appends a system message
func (c *Conversation) AddSystemMessage(content string) {
	c.AddMessage(types.RoleSystem, content)
}

// AddUserMessage appends a user message
func (c *Conversation) AddUserMessage(content string) {
	c.AddMessage(types.RoleUser, content)
}

// AddAssistantMessage appends an assistant message
func (c *Conversation) AddAssistantMessage(content string) {
	c.AddMessage(types.RoleAssistant, content)
}

// trim evicts the oldest non-system messages until at most maxMessages
// of them remain. Surviving messages keep their original chronological
// interleaving; system messages stay in place rather than being grouped
// to the front.
func (c *Conversation) trim() {
	if c.maxMessages <= 0 {
		return
	}

	excess := c.countNonSystem() - c.maxMessages
	if excess <= 0 {
		return
	}

	kept := make([]types.Message, 0, len(c.messages)-excess)
	for _, msg := range c.messages {
		if excess > 0 && msg.Role != types.RoleSystem {
			excess--
			continue
		}
		kept = append(kept, msg)
	}
	c.messages = kept
}

func (c *Conversation) countNonSystem() int {
	count := 0
	for _, msg := range c.messages {
		if msg.Role != types.RoleSystem {
			count++
		}
	}
	return count
}

// Len returns the number of stored messages
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// GetMessages returns a copy of the stored messages in order
func (c *Conversation) GetMessages() []types.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	messages := make([]types.Message, len(c.messages))
	copy(messages, c.messages)
	return messages
}

// GetFormattedHistory renders the stored messages as one "role: content"
// line per message, joined by newlines.
func (c *Conversation) GetFormattedHistory() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lines := make([]string, 0, len(c.messages))
	for _, msg := range c.messages {
		lines = append(lines, string(msg.Role)+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// GetLastMessages returns the final count messages in original order;
// if count exceeds the stored size, all messages are returned.
func (c *Conversation) GetLastMessages(count int) []types.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if count <= 0 {
		return []types.Message{}
	}
	start := len(c.messages) - count
	if start < 0 {
		start = 0
	}

	messages := make([]types.Message, len(c.messages)-start)
	copy(messages, c.messages[start:])
	return messages
}

// GetMessagesByRole returns, in original order, all messages whose role
// equals role.
func (c *Conversation) GetMessagesByRole(role types.Role) []types.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	messages := make([]types.Message, 0)
	for _, msg := range c.messages {
		if msg.Role == role {
			messages = append(messages, msg)
		}
	}
	return messages
}

// Clear empties the log unconditionally, system messages included
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = c.messages[:0]
}
