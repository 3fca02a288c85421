package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hospitaladmin/internal/domain"
)

type hospitalRepository struct {
	DB *sql.DB
}

func NewHospitalRepository(db *sql.DB) domain.HospitalRepository {
	return &hospitalRepository{
		DB: db,
	}
}

func (r *hospitalRepository) Create(ctx context.Context, h *domain.Hospital) error {
	query := `
		INSERT INTO hospitals (name, location, description, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, h.Name, h.Location, h.Description, h.Image, h.CreatedAt, h.UpdatedAt).Scan(&h.ID)
}

func (r *hospitalRepository) GetByID(ctx context.Context, id string) (*domain.Hospital, error) {
	query := `
		SELECT id, name, location, description, image, created_at, updated_at
		FROM hospitals
		WHERE id = $1
	`
	h := &domain.Hospital{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.Name, &h.Location, &h.Description, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (r *hospitalRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Hospital, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM hospitals`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query, args := paginate(`
		SELECT id, name, location, description, image, created_at, updated_at
		FROM hospitals
		ORDER BY name`, params)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	hospitals := make([]*domain.Hospital, 0)
	for rows.Next() {
		h := &domain.Hospital{}
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Description, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, 0, err
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return hospitals, total, nil
}

func (r *hospitalRepository) Update(ctx context.Context, h *domain.Hospital) error {
	query := `
		UPDATE hospitals
		SET name = $2, location = $3, description = $4, image = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, h.ID, h.Name, h.Location, h.Description, h.Image, h.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *hospitalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM hospitals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
