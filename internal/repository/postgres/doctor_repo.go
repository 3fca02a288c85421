package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"hospitaladmin/internal/domain"
)

type doctorRepository struct {
	DB *sql.DB
}

func NewDoctorRepository(db *sql.DB) domain.DoctorRepository {
	return &doctorRepository{
		DB: db,
	}
}

const doctorColumns = `id, name, specialization, experience, contact, email, hospital, availability, qualifications, charges, profile_picture, created_at, updated_at`

func scanDoctor(row rowScanner) (*domain.Doctor, error) {
	d := &domain.Doctor{}
	err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.Experience, &d.Contact, &d.Email, &d.Hospital,
		&d.Availability, &d.Qualifications, &d.Charges, &d.ProfilePicture, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *doctorRepository) Create(ctx context.Context, d *domain.Doctor) error {
	query := `
		INSERT INTO doctors (name, specialization, experience, contact, email, hospital, availability, qualifications, charges, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, d.Name, d.Specialization, d.Experience, d.Contact, d.Email, d.Hospital,
		d.Availability, d.Qualifications, d.Charges, d.ProfilePicture, d.CreatedAt, d.UpdatedAt).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	d, err := scanDoctor(r.DB.QueryRowContext(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	d, err := scanDoctor(r.DB.QueryRowContext(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE lower(email) = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *doctorRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Doctor, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+doctorColumns+` FROM doctors ORDER BY name, created_at`, params)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *doctorRepository) Update(ctx context.Context, d *domain.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $2, specialization = $3, experience = $4, contact = $5, email = $6, hospital = $7,
		    availability = $8, qualifications = $9, charges = $10, profile_picture = $11, updated_at = $12
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, d.ID, d.Name, d.Specialization, d.Experience, d.Contact, d.Email, d.Hospital,
		d.Availability, d.Qualifications, d.Charges, d.ProfilePicture, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return requireAffected(result)
}

func (r *doctorRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
