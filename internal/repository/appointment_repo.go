package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"nagacare/internal/domain"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt domain.Appointment) error
	GetByID(ctx context.Context, id string) (domain.Appointment, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

type PgAppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAppointmentRepository(pool *pgxpool.Pool) *PgAppointmentRepository {
	return &PgAppointmentRepository{pool: pool}
}

func (r *PgAppointmentRepository) Create(ctx context.Context, appt domain.Appointment) error {
	const query = `
		INSERT INTO appointments (id, user_id, facility_id, service, scheduled_at, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		appt.ID,
		appt.UserID,
		appt.FacilityID,
		appt.Service,
		appt.ScheduledAt,
		appt.Notes,
		string(appt.Status),
		appt.CreatedAt,
	)
	return err
}

func (r *PgAppointmentRepository) GetByID(ctx context.Context, id string) (domain.Appointment, error) {
	const query = `
		SELECT id, user_id, facility_id, service, scheduled_at, notes, status, created_at
		FROM appointments
		WHERE id = $1
	`
	var a domain.Appointment
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.UserID,
		&a.FacilityID,
		&a.Service,
		&a.ScheduledAt,
		&a.Notes,
		&status,
		&a.CreatedAt,
	)
	if err != nil {
		return domain.Appointment{}, err
	}
	a.Status = domain.AppointmentStatus(status)
	return a, nil
}

func (r *PgAppointmentRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Appointment, error) {
	const query = `
		SELECT id, user_id, facility_id, service, scheduled_at, notes, status, created_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY scheduled_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts := []domain.Appointment{}
	for rows.Next() {
		var a domain.Appointment
		var status string
		if err := rows.Scan(&a.ID, &a.UserID, &a.FacilityID, &a.Service, &a.ScheduledAt, &a.Notes, &status, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Status = domain.AppointmentStatus(status)
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (r *PgAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	const query = `
		UPDATE appointments SET status = $2 WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, string(status))
	return err
}
