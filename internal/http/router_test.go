package http

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"nagacare/internal/assistant"
	"nagacare/internal/directory"
	"nagacare/internal/llm"
	"nagacare/internal/service"
)

func TestNewRouter_Routes(t *testing.T) {
	dir, err := directory.Load()
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	logger := zap.NewNop()
	jwtSvc := newTestJWT()
	registry := assistant.NewRegistry(&llm.MockClient{Response: "ok"}, assistant.Options{}, time.Hour)

	r := NewRouter(logger, Handlers{
		Directory:    NewDirectoryHandler(logger, dir, ""),
		Contacts:     NewContactsHandler(logger, dir),
		Assistant:    NewAssistantHandler(logger, registry, nil, service.NewTranscriptService(nil)),
		Users:        NewUserHandler(logger, service.NewUserService(logger, nil), jwtSvc),
		Appointments: NewAppointmentHandler(logger, service.NewAppointmentService(logger, nil, dir, nil, nil)),
	}, jwtSvc)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/facilities/search?q=pharmacy", http.StatusOK},
		{http.MethodGet, "/facilities/ncgh", http.StatusOK},
		{http.MethodGet, "/dashboard/summary", http.StatusOK},
		{http.MethodGet, "/emergency-contacts/naga-911/dial", http.StatusOK},
		{http.MethodPost, "/assistant/sessions", http.StatusCreated},
		{http.MethodGet, "/assistant/sessions/x/transcript", http.StatusServiceUnavailable},
		{http.MethodGet, "/appointments", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		rec := performRequest(r, tc.method, tc.path, nil)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct == "" {
			t.Fatalf("%s %s: expected content type", tc.method, tc.path)
		}
	}
}
