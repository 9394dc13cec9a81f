package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"nagacare/internal/directory"
	"nagacare/internal/domain"
	"nagacare/internal/email"
	"nagacare/internal/repository"
)

// FacilityLookup es la parte del directorio que necesitan los turnos.
type FacilityLookup interface {
	Facility(id string) (domain.Facility, error)
}

// AppointmentService gestiona solicitudes de turno. Los turnos quedan en estado
// requested: la confirmacion la hace la facility por fuera del sistema.
type AppointmentService struct {
	logger     *zap.Logger
	repo       repository.AppointmentRepository
	facilities FacilityLookup
	users      repository.UserRepository
	sender     email.Sender
	now        func() time.Time
}

type RequestAppointmentInput struct {
	UserID      string
	FacilityID  string
	Service     string
	ScheduledAt time.Time
	Notes       string
}

var (
	ErrAppointmentServiceNotConfigured = errors.New("appointment service not configured")
	ErrAppointmentInvalidInput         = errors.New("appointment invalid input")
	ErrAppointmentInPast               = errors.New("appointment must be scheduled in the future")
	ErrAppointmentUnknownFacility      = errors.New("appointment facility not found")
	ErrAppointmentServiceNotOffered    = errors.New("service not offered by facility")
	ErrAppointmentNotFound             = errors.New("appointment not found")
	ErrAppointmentAlreadyCancelled     = errors.New("appointment already cancelled")
)

const maxNotesLen = 500

func NewAppointmentService(
	logger *zap.Logger,
	repo repository.AppointmentRepository,
	facilities FacilityLookup,
	users repository.UserRepository,
	sender email.Sender,
) *AppointmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		logger:     logger,
		repo:       repo,
		facilities: facilities,
		users:      users,
		sender:     sender,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Available reports whether appointments can be stored at all.
func (s *AppointmentService) Available() bool {
	return s != nil && s.repo != nil && s.facilities != nil
}

func (s *AppointmentService) Request(ctx context.Context, input RequestAppointmentInput) (domain.Appointment, error) {
	if s == nil || s.repo == nil || s.facilities == nil {
		return domain.Appointment{}, ErrAppointmentServiceNotConfigured
	}

	userID := strings.TrimSpace(input.UserID)
	facilityID := strings.TrimSpace(input.FacilityID)
	service := strings.TrimSpace(input.Service)
	notes := strings.TrimSpace(input.Notes)
	if userID == "" || facilityID == "" || input.ScheduledAt.IsZero() || len(notes) > maxNotesLen {
		return domain.Appointment{}, ErrAppointmentInvalidInput
	}
	if !input.ScheduledAt.After(s.now()) {
		return domain.Appointment{}, ErrAppointmentInPast
	}

	facility, err := s.facilities.Facility(facilityID)
	if err != nil {
		return domain.Appointment{}, ErrAppointmentUnknownFacility
	}
	if service != "" && len(facility.Services) > 0 && !directory.Offers(facility, service) {
		return domain.Appointment{}, ErrAppointmentServiceNotOffered
	}

	appt := domain.Appointment{
		ID:          uuid.NewString(),
		UserID:      userID,
		FacilityID:  facility.ID,
		Service:     service,
		ScheduledAt: input.ScheduledAt.UTC(),
		Notes:       notes,
		Status:      domain.AppointmentRequested,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return domain.Appointment{}, err
	}

	s.notify(ctx, appt, facility)
	return appt, nil
}

func (s *AppointmentService) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	if s == nil || s.repo == nil {
		return nil, ErrAppointmentServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrAppointmentInvalidInput
	}
	return s.repo.ListByUserID(ctx, userID)
}

// Cancel solo permite cancelar al dueño; cualquier otro usuario recibe not found.
func (s *AppointmentService) Cancel(ctx context.Context, userID, id string) (domain.Appointment, error) {
	if s == nil || s.repo == nil {
		return domain.Appointment{}, ErrAppointmentServiceNotConfigured
	}
	appt, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Appointment{}, ErrAppointmentNotFound
		}
		return domain.Appointment{}, err
	}
	if appt.UserID != strings.TrimSpace(userID) {
		return domain.Appointment{}, ErrAppointmentNotFound
	}
	if appt.Status == domain.AppointmentCancelled {
		return domain.Appointment{}, ErrAppointmentAlreadyCancelled
	}
	if err := s.repo.UpdateStatus(ctx, appt.ID, domain.AppointmentCancelled); err != nil {
		return domain.Appointment{}, err
	}
	appt.Status = domain.AppointmentCancelled
	return appt, nil
}

func (s *AppointmentService) notify(ctx context.Context, appt domain.Appointment, facility domain.Facility) {
	if s.sender == nil || email.IsDisabled(s.sender) || s.users == nil {
		return
	}
	user, err := s.users.GetByID(ctx, appt.UserID)
	if err != nil {
		s.logger.Warn("appointment confirmation skipped", zap.String("appointment_id", appt.ID), zap.Error(err))
		return
	}
	if err := s.sender.SendAppointmentConfirmation(ctx, user.Email, appt, facility); err != nil {
		s.logger.Warn("appointment confirmation failed", zap.String("appointment_id", appt.ID), zap.Error(err))
	}
}
