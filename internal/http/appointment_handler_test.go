package http

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"nagacare/internal/directory"
	"nagacare/internal/domain"
	"nagacare/internal/service"
)

type mockAppointmentRepo struct {
	items map[string]domain.Appointment
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt domain.Appointment) error {
	m.items[appt.ID] = appt
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id string) (domain.Appointment, error) {
	appt, ok := m.items[id]
	if !ok {
		return domain.Appointment{}, pgx.ErrNoRows
	}
	return appt, nil
}

func (m *mockAppointmentRepo) ListByUserID(_ context.Context, userID string) ([]domain.Appointment, error) {
	out := []domain.Appointment{}
	for _, a := range m.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	appt, ok := m.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	appt.Status = status
	m.items[id] = appt
	return nil
}

func setupAppointmentRouter(t *testing.T, repo *mockAppointmentRepo) (*gin.Engine, *service.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir, err := directory.Load()
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	var svc *service.AppointmentService
	if repo != nil {
		svc = service.NewAppointmentService(zap.NewNop(), repo, dir, nil, nil)
	} else {
		svc = service.NewAppointmentService(zap.NewNop(), nil, dir, nil, nil)
	}
	jwtSvc := newTestJWT()
	h := NewAppointmentHandler(zap.NewNop(), svc)

	r := gin.New()
	appts := r.Group("/appointments", h.RequireStorage, JWTAuthMiddleware(jwtSvc))
	appts.POST("", h.Create)
	appts.GET("", h.List)
	appts.POST("/:id/cancel", h.Cancel)
	return r, jwtSvc
}

func accessToken(t *testing.T, jwtSvc *service.JWTService, userID string) string {
	t.Helper()
	pair, err := jwtSvc.GeneratePair(context.Background(), domain.User{ID: userID, Email: userID + "@example.com"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	return pair.AccessToken
}

type appointmentResponse struct {
	Appointment domain.Appointment `json:"appointment"`
}

func TestAppointmentHandler_RequireAuth(t *testing.T) {
	r, _ := setupAppointmentRouter(t, &mockAppointmentRepo{items: map[string]domain.Appointment{}})
	if rec := performRequest(r, http.MethodGet, "/appointments", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAppointmentHandler_CreateListCancel(t *testing.T) {
	repo := &mockAppointmentRepo{items: map[string]domain.Appointment{}}
	r, jwtSvc := setupAppointmentRouter(t, repo)
	token := accessToken(t, jwtSvc, "u1")

	rec := performAuthRequest(r, http.MethodPost, "/appointments", token, map[string]any{
		"facility_id":  "chc-main",
		"service":      "Immunization",
		"scheduled_at": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"notes":        "second dose",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created appointmentResponse
	decodeBody(t, rec, &created)
	if created.Appointment.UserID != "u1" || created.Appointment.Status != domain.AppointmentRequested {
		t.Fatalf("unexpected appointment %+v", created.Appointment)
	}

	rec = performAuthRequest(r, http.MethodGet, "/appointments", token, nil)
	var list struct {
		Appointments []domain.Appointment `json:"appointments"`
	}
	decodeBody(t, rec, &list)
	if len(list.Appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(list.Appointments))
	}

	other := accessToken(t, jwtSvc, "u2")
	path := "/appointments/" + created.Appointment.ID + "/cancel"
	if rec := performAuthRequest(r, http.MethodPost, path, other, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for other user, got %d", rec.Code)
	}
	if rec := performAuthRequest(r, http.MethodPost, path, token, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec := performAuthRequest(r, http.MethodPost, path, token, nil); rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestAppointmentHandler_Validation(t *testing.T) {
	r, jwtSvc := setupAppointmentRouter(t, &mockAppointmentRepo{items: map[string]domain.Appointment{}})
	token := accessToken(t, jwtSvc, "u1")

	cases := []map[string]any{
		{"facility_id": "chc-main"},
		{"facility_id": "chc-main", "scheduled_at": time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)},
		{"facility_id": "nope", "scheduled_at": time.Now().Add(time.Hour).UTC().Format(time.RFC3339)},
		{"facility_id": "chc-main", "service": "Heart Surgery", "scheduled_at": time.Now().Add(time.Hour).UTC().Format(time.RFC3339)},
	}
	for i, body := range cases {
		if rec := performAuthRequest(r, http.MethodPost, "/appointments", token, body); rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected status 400, got %d", i, rec.Code)
		}
	}
}

func TestAppointmentHandler_NoDatabase(t *testing.T) {
	r, jwtSvc := setupAppointmentRouter(t, nil)
	token := accessToken(t, jwtSvc, "u1")

	if rec := performAuthRequest(r, http.MethodGet, "/appointments", token, nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	// sin base de datos responde 503 tambien sin token
	if rec := performRequest(r, http.MethodPost, "/appointments/a1/cancel", nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without token, got %d", rec.Code)
	}
}
