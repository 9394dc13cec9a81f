package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"nagacare/internal/domain"
	"nagacare/internal/repository"
)

// TranscriptService persiste las entradas del asistente. Implementa assistant.Recorder.
type TranscriptService struct {
	repo repository.MessageRepository
}

var (
	ErrTranscriptNotConfigured = errors.New("transcript storage not configured")
	ErrMessageInvalidInput     = errors.New("message invalid input")
)

func NewTranscriptService(repo repository.MessageRepository) *TranscriptService {
	return &TranscriptService{repo: repo}
}

func (s *TranscriptService) Record(ctx context.Context, msg domain.ChatMessage) error {
	if s == nil || s.repo == nil {
		return ErrTranscriptNotConfigured
	}

	msg.SessionID = strings.TrimSpace(msg.SessionID)
	msg.Content = strings.TrimSpace(msg.Content)

	if msg.SessionID == "" || msg.Content == "" {
		return ErrMessageInvalidInput
	}
	switch msg.Role {
	case domain.RoleUser, domain.RoleAssistant, domain.RoleSystem:
	default:
		return ErrMessageInvalidInput
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	return s.repo.Create(ctx, msg)
}

func (s *TranscriptService) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if s == nil || s.repo == nil {
		return nil, ErrTranscriptNotConfigured
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return []domain.ChatMessage{}, nil
	}
	return s.repo.ListBySessionID(ctx, sessionID)
}

// FormatTranscript arma el transcript como texto plano, en orden cronologico.
// Omite la entrada de sistema.
func FormatTranscript(messages []domain.ChatMessage) string {
	sorted := make([]domain.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role != domain.RoleSystem {
			sorted = append(sorted, m)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	lines := make([]string, 0, len(sorted))
	for _, m := range sorted {
		role := "User"
		if m.Role == domain.RoleAssistant {
			role = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, m.Content))
	}
	return strings.Join(lines, "\n")
}
