package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"nagacare/internal/domain"
)

func TestAppointmentConfirmation(t *testing.T) {
	appt := domain.Appointment{
		ID:          "appt-1",
		Service:     "prenatal care",
		ScheduledAt: time.Date(2025, 3, 3, 1, 30, 0, 0, time.UTC),
	}
	facility := domain.Facility{Name: "Concepcion Grande Health Center", Address: "Magsaysay Avenue"}

	subject, body := appointmentConfirmation(appt, facility)
	if subject != "NagaCare appointment request: Concepcion Grande Health Center" {
		t.Fatalf("unexpected subject %q", subject)
	}
	for _, want := range []string{
		"Facility: Concepcion Grande Health Center",
		"Address: Magsaysay Avenue",
		"Service: prenatal care",
		"Schedule: Monday, March 3, 2025 at 9:30 AM",
		"Reference: appt-1",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got:\n%s", want, body)
		}
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("noreply@naga.gov.ph", "NagaCare", "user@example.com", "Hi", "body")
	if !strings.HasPrefix(msg, "From: \"NagaCare\" <noreply@naga.gov.ph>\r\nTo: user@example.com\r\nSubject: Hi\r\n") {
		t.Fatalf("unexpected headers: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nbody") {
		t.Fatalf("expected body after blank line, got %q", msg)
	}

	msg = buildMessage("noreply@naga.gov.ph", "", "user@example.com", "Cita en Peñafrancia", "body")
	if !strings.HasPrefix(msg, "From: noreply@naga.gov.ph\r\n") {
		t.Fatalf("expected bare from address, got %q", msg)
	}
	if !strings.Contains(msg, "Subject: =?utf-8?q?Cita_en_Pe=C3=B1afrancia?=\r\n") {
		t.Fatalf("expected q-encoded subject, got %q", msg)
	}
}

func TestNewSMTPSender_Validation(t *testing.T) {
	if _, err := NewSMTPSender("", 587, "", "", "a@b.c", "", false); err == nil {
		t.Fatalf("expected error without host")
	}
	if _, err := NewSMTPSender("smtp.example.com", 0, "", "", "", "", false); err == nil {
		t.Fatalf("expected error without from")
	}
}

func TestDisabledSender(t *testing.T) {
	s := NewDisabledSender("smtp not configured")
	if !IsDisabled(s) {
		t.Fatalf("expected disabled sender to be detected")
	}
	err := s.SendAppointmentConfirmation(context.Background(), "u@example.com", domain.Appointment{}, domain.Facility{})
	if err == nil || err.Error() != "smtp not configured" {
		t.Fatalf("expected configured reason, got %v", err)
	}
}
