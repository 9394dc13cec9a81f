package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nagacare/internal/domain"
)

type mockMessageServiceRepo struct {
	lastCreated domain.ChatMessage
	createErr   error
	listData    []domain.ChatMessage
	listErr     error
	lastSession string
}

func (m *mockMessageServiceRepo) Create(_ context.Context, message domain.ChatMessage) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.lastCreated = message
	return nil
}

func (m *mockMessageServiceRepo) ListBySessionID(_ context.Context, sessionID string) ([]domain.ChatMessage, error) {
	m.lastSession = sessionID
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listData, nil
}

func TestTranscriptRecord_NormalizesAndDefaults(t *testing.T) {
	repo := &mockMessageServiceRepo{}
	svc := NewTranscriptService(repo)

	err := svc.Record(context.Background(), domain.ChatMessage{
		SessionID: " s1 ",
		Role:      domain.RoleUser,
		Content:   " hola ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastCreated.ID == "" {
		t.Fatalf("expected generated id")
	}
	if repo.lastCreated.CreatedAt.IsZero() {
		t.Fatalf("expected created_at default")
	}
	if repo.lastCreated.SessionID != "s1" || repo.lastCreated.Content != "hola" {
		t.Fatalf("expected trimmed fields, got session=%q content=%q", repo.lastCreated.SessionID, repo.lastCreated.Content)
	}
}

func TestTranscriptRecord_Validation(t *testing.T) {
	repo := &mockMessageServiceRepo{}
	svc := NewTranscriptService(repo)

	cases := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hola"},
		{SessionID: "s1", Content: "hola"},
		{SessionID: "s1", Role: "moderator", Content: "hola"},
		{SessionID: "s1", Role: domain.RoleAssistant, Content: "   "},
	}
	for i, c := range cases {
		if err := svc.Record(context.Background(), c); !errors.Is(err, ErrMessageInvalidInput) {
			t.Fatalf("case %d expected ErrMessageInvalidInput, got %v", i, err)
		}
	}
}

func TestTranscriptRecord_PreservesExplicitFields(t *testing.T) {
	repo := &mockMessageServiceRepo{}
	svc := NewTranscriptService(repo)
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	err := svc.Record(context.Background(), domain.ChatMessage{
		ID:        "m1",
		SessionID: "s1",
		Role:      domain.RoleAssistant,
		Content:   "ok",
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastCreated.ID != "m1" || !repo.lastCreated.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected explicit fields preserved, got %+v", repo.lastCreated)
	}
}

func TestTranscriptRecord_PropagatesRepoError(t *testing.T) {
	repo := &mockMessageServiceRepo{createErr: errors.New("db down")}
	svc := NewTranscriptService(repo)

	err := svc.Record(context.Background(), domain.ChatMessage{SessionID: "s1", Role: domain.RoleUser, Content: "hola"})
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestTranscriptListBySession(t *testing.T) {
	repo := &mockMessageServiceRepo{listData: []domain.ChatMessage{{ID: "m1"}, {ID: "m2"}}}
	svc := NewTranscriptService(repo)

	got, err := svc.ListBySession(context.Background(), " s1 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastSession != "s1" {
		t.Fatalf("expected trimmed session, got %q", repo.lastSession)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}

	empty, err := svc.ListBySession(context.Background(), "  ")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list for blank session, got %v,%v", empty, err)
	}
}

func TestTranscriptService_NotConfigured(t *testing.T) {
	var svc *TranscriptService
	if err := svc.Record(context.Background(), domain.ChatMessage{}); !errors.Is(err, ErrTranscriptNotConfigured) {
		t.Fatalf("expected ErrTranscriptNotConfigured, got %v", err)
	}
	if _, err := NewTranscriptService(nil).ListBySession(context.Background(), "s1"); !errors.Is(err, ErrTranscriptNotConfigured) {
		t.Fatalf("expected ErrTranscriptNotConfigured, got %v", err)
	}
}

func TestFormatTranscript(t *testing.T) {
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	messages := []domain.ChatMessage{
		{Role: domain.RoleAssistant, Content: "Drink water.", CreatedAt: base.Add(2 * time.Second)},
		{Role: domain.RoleSystem, Content: "prompt", CreatedAt: base},
		{Role: domain.RoleUser, Content: "I feel dizzy", CreatedAt: base.Add(time.Second)},
	}

	got := FormatTranscript(messages)
	want := "User: I feel dizzy\nAssistant: Drink water."
	if got != want {
		t.Fatalf("unexpected transcript:\n%s\nwant:\n%s", got, want)
	}
	if FormatTranscript(nil) != "" {
		t.Fatalf("expected empty transcript")
	}
}
