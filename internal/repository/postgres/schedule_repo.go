package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hospitaladmin/internal/domain"

	"github.com/lib/pq"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{
		DB: db,
	}
}

const scheduleColumns = `id, doctor_id, date, slots, created_at, updated_at`

func encodeSlots(slots []domain.Slot) ([]byte, error) {
	if slots == nil {
		slots = []domain.Slot{}
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("encode slots: %w", err)
	}
	return b, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*domain.DaySchedule, error) {
	s := &domain.DaySchedule{}
	var raw []byte
	if err := row.Scan(&s.ID, &s.DoctorID, &s.Date, &raw, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Slots = []domain.Slot{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.Slots); err != nil {
			return nil, fmt.Errorf("decode slots of schedule %s: %w", s.ID, err)
		}
	}
	return s, nil
}

func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == pgUniqueViolation
}

// isUnknownDoctor reports a schedules.doctor_id foreign key violation.
func isUnknownDoctor(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == pgForeignKeyViolation
}

func (r *scheduleRepository) Create(ctx context.Context, s *domain.DaySchedule) error {
	slots, err := encodeSlots(s.Slots)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO schedules (doctor_id, date, slots, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = r.DB.QueryRowContext(ctx, query, s.DoctorID, s.Date, slots, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSchedule
		}
		if isUnknownDoctor(err) {
			return domain.ErrUnknownDoctor
		}
		return err
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.DaySchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	s, err := scanSchedule(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *scheduleRepository) GetByKey(ctx context.Context, key domain.ScheduleKey) (*domain.DaySchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE doctor_id = $1 AND date = $2`
	s, err := scanSchedule(r.DB.QueryRowContext(ctx, query, key.DoctorID, key.Date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// List returns schedules matching filter ordered by date, with the doctor reference resolved.
func (r *scheduleRepository) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.DaySchedule, error) {
	var (
		where []string
		args  []any
	)
	if filter.DoctorID != "" {
		args = append(args, filter.DoctorID)
		where = append(where, "doctor_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		where = append(where, "date = $"+strconv.Itoa(len(args)))
	}
	query := `SELECT ` + scheduleColumns + ` FROM schedules`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, created_at`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.DaySchedule, 0)
	doctorIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
		if _, ok := seen[s.DoctorID]; !ok {
			seen[s.DoctorID] = struct{}{}
			doctorIDs = append(doctorIDs, s.DoctorID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(doctorIDs) == 0 {
		return schedules, nil
	}

	refs, err := r.doctorRefs(ctx, doctorIDs)
	if err != nil {
		return nil, err
	}
	for _, s := range schedules {
		s.Doctor = refs[s.DoctorID]
	}
	return schedules, nil
}

func (r *scheduleRepository) doctorRefs(ctx context.Context, ids []string) (map[string]*domain.DoctorRef, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, specialization, contact, email FROM doctors WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	refs := make(map[string]*domain.DoctorRef, len(ids))
	for rows.Next() {
		ref := &domain.DoctorRef{}
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Specialization, &ref.Contact, &ref.Email); err != nil {
			return nil, err
		}
		refs[ref.ID] = ref
	}
	return refs, rows.Err()
}

// Upsert replaces the slot array of the (doctor, date) document, creating it if needed.
func (r *scheduleRepository) Upsert(ctx context.Context, s *domain.DaySchedule) error {
	slots, err := encodeSlots(s.Slots)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO schedules (doctor_id, date, slots, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (doctor_id, date) DO UPDATE
		SET slots = EXCLUDED.slots, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	err = r.DB.QueryRowContext(ctx, query, s.DoctorID, s.Date, slots, s.CreatedAt, s.UpdatedAt).
		Scan(&s.ID, &s.CreatedAt)
	if isUnknownDoctor(err) {
		return domain.ErrUnknownDoctor
	}
	return err
}

func (r *scheduleRepository) Update(ctx context.Context, s *domain.DaySchedule) error {
	slots, err := encodeSlots(s.Slots)
	if err != nil {
		return err
	}
	query := `
		UPDATE schedules
		SET doctor_id = $2, date = $3, slots = $4, updated_at = $5
		WHERE id = $1
		RETURNING created_at
	`
	err = r.DB.QueryRowContext(ctx, query, s.ID, s.DoctorID, s.Date, slots, s.UpdatedAt).Scan(&s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSchedule
		}
		if isUnknownDoctor(err) {
			return domain.ErrUnknownDoctor
		}
		return err
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
