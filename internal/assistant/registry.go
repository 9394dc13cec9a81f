package assistant

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nagacare/internal/domain"
	"nagacare/internal/llm"
)

// Registry owns the open conversations, one per assistant session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Conversation
	client   llm.ChatClient
	opts     Options
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewRegistry(client llm.ChatClient, opts Options, ttl time.Duration) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
		opts.Logger = logger
	}
	return &Registry{
		sessions: make(map[string]*Conversation),
		client:   client,
		opts:     opts,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Open returns the conversation for id, creating it when missing.
// An empty id starts a new session with a generated id.
func (r *Registry) Open(id string) (*Conversation, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if conv, ok := r.sessions[id]; ok {
		return conv, false
	}
	conv := newConversation(id, r.client, r.opts, r.now)
	r.sessions[id] = conv
	return conv, true
}

func (r *Registry) Get(id string) (*Conversation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.sessions[strings.TrimSpace(id)]
	return conv, ok
}

// Close forgets the session. It reports whether the session existed.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	id = strings.TrimSpace(id)
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sessions lists open sessions, most recently active first.
func (r *Registry) Sessions() []domain.AssistantSession {
	r.mu.Lock()
	convs := make([]*Conversation, 0, len(r.sessions))
	for _, c := range r.sessions {
		convs = append(convs, c)
	}
	r.mu.Unlock()

	out := make([]domain.AssistantSession, 0, len(convs))
	for _, c := range convs {
		out = append(out, c.Session())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActive.After(out[j].LastActive)
	})
	return out
}

// Sweep drops sessions idle for longer than the ttl and returns how many were dropped.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, conv := range r.sessions {
		if now.Sub(conv.LastActive()) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("assistant sessions evicted", zap.Int("count", n))
			}
		}
	}
}
