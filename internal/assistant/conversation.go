// Package assistant keeps the per-session transcript exchanged with the
// health assistant and forwards it to the configured chat-completion client.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nagacare/internal/domain"
	"nagacare/internal/llm"
)

// DefaultSystemPrompt is used when no prompt is configured.
const DefaultSystemPrompt = `You are the NagaCare health assistant for Naga City, Camarines Sur, Philippines.
Give short, practical and friendly health information. Point people to the nearest barangay
health center, city hospital or the emergency hotlines when symptoms sound serious.
You do not diagnose or prescribe. Answer in the language the user writes in (English, Filipino or Bikol).`

// FallbackReply is the assistant entry stored and returned when the completion call fails.
const FallbackReply = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment, or call the emergency hotlines if you need urgent help."

var ErrEmptyMessage = errors.New("empty message")

const recordTimeout = 5 * time.Second

// Recorder receives every entry appended to a transcript. Errors are logged
// by the conversation and never returned to the caller.
type Recorder interface {
	Record(ctx context.Context, msg domain.ChatMessage) error
}

type Options struct {
	SystemPrompt string
	Recorder     Recorder
	Logger       *zap.Logger
}

// Conversation is an ordered transcript whose first entry is always the system prompt.
// Turns are serialized, so transcript order equals call order.
type Conversation struct {
	mu         sync.Mutex
	id         string
	client     llm.ChatClient
	recorder   Recorder
	logger     *zap.Logger
	prompt     string
	messages   []domain.ChatMessage
	createdAt  time.Time
	lastActive atomic.Int64
	now        func() time.Time
}

func NewConversation(id string, client llm.ChatClient, opts Options) *Conversation {
	return newConversation(id, client, opts, func() time.Time { return time.Now().UTC() })
}

func newConversation(id string, client llm.ChatClient, opts Options, now func() time.Time) *Conversation {
	prompt := strings.TrimSpace(opts.SystemPrompt)
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if id == "" {
		id = uuid.NewString()
	}
	c := &Conversation{
		id:       id,
		client:   client,
		recorder: opts.Recorder,
		logger:   logger,
		prompt:   prompt,
		now:      now,
	}
	c.createdAt = c.now()
	c.touch(c.createdAt)
	c.messages = []domain.ChatMessage{c.systemMessage()}
	return c
}

func (c *Conversation) ID() string {
	return c.id
}

// SendMessage appends the user turn, forwards the whole transcript and appends
// the reply. A failed completion is logged and answered with FallbackReply;
// the only error returned is ErrEmptyMessage.
func (c *Conversation) SendMessage(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.appendLocked(ctx, domain.RoleUser, text)

	reply, err := c.client.Complete(ctx, c.transcriptLocked())
	if err != nil {
		c.logger.Error("assistant completion failed",
			zap.String("session_id", c.id),
			zap.Int("transcript_len", len(c.messages)),
			zap.Error(err),
		)
		reply = FallbackReply
	}

	c.appendLocked(ctx, domain.RoleAssistant, reply)
	return reply, nil
}

// History returns every entry except the system prompt, oldest first.
func (c *Conversation) History() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.messages)-1)
	copy(out, c.messages[1:])
	return out
}

// Clear drops every turn and keeps only the system prompt.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = []domain.ChatMessage{c.systemMessage()}
	c.touch(c.now())
}

// HealthTip asks the assistant for a canned tip in the given category.
func (c *Conversation) HealthTip(ctx context.Context, category TipCategory) (string, error) {
	prompt, ok := tipPrompts[category]
	if !ok {
		return "", ErrUnknownTipCategory
	}
	return c.SendMessage(ctx, prompt)
}

func (c *Conversation) Session() domain.AssistantSession {
	return domain.AssistantSession{
		ID:         c.id,
		CreatedAt:  c.createdAt,
		LastActive: c.LastActive(),
	}
}

// LastActive is safe to call while a turn is in flight.
func (c *Conversation) LastActive() time.Time {
	return time.Unix(0, c.lastActive.Load()).UTC()
}

func (c *Conversation) touch(t time.Time) {
	c.lastActive.Store(t.UnixNano())
}

func (c *Conversation) systemMessage() domain.ChatMessage {
	return domain.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: c.id,
		Role:      domain.RoleSystem,
		Content:   c.prompt,
		CreatedAt: c.now(),
	}
}

func (c *Conversation) appendLocked(ctx context.Context, role domain.Role, content string) {
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: c.id,
		Role:      role,
		Content:   content,
		CreatedAt: c.now(),
	}
	c.messages = append(c.messages, msg)
	c.touch(msg.CreatedAt)

	if c.recorder == nil {
		return
	}
	// el transcript persistido debe coincidir con History aunque el cliente corte la request
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := c.recorder.Record(recCtx, msg); err != nil {
		c.logger.Warn("record transcript entry failed",
			zap.String("session_id", c.id),
			zap.String("role", string(role)),
			zap.Error(err),
		)
	}
}

func (c *Conversation) transcriptLocked() []llm.Message {
	out := make([]llm.Message, 0, len(c.messages))
	for _, m := range c.messages {
		out = append(out, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}
