package email

import (
	"context"
	"errors"

	"nagacare/internal/domain"
)

// Sender define la interfaz para avisos de turnos por correo.
type Sender interface {
	SendAppointmentConfirmation(ctx context.Context, toEmail string, appt domain.Appointment, facility domain.Facility) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendAppointmentConfirmation(context.Context, string, domain.Appointment, domain.Facility) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}

// IsDisabled reporta si el sender es el placeholder sin SMTP.
func IsDisabled(s Sender) bool {
	_, ok := s.(*disabledSender)
	return ok
}
