package domain

import (
	"context"
	"time"
)

// Hospital represents a hospital in the network.
// swagger:model Hospital
type Hospital struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HospitalRepository defines the interface for hospital storage
type HospitalRepository interface {
	Create(ctx context.Context, hospital *Hospital) error
	GetByID(ctx context.Context, id string) (*Hospital, error)
	List(ctx context.Context, params PaginationParams) ([]*Hospital, int, error)
	Update(ctx context.Context, hospital *Hospital) error
	Delete(ctx context.Context, id string) error
}

// HospitalService defines the business logic for hospitals.
type HospitalService interface {
	Create(ctx context.Context, hospital *Hospital) error
	GetByID(ctx context.Context, id string) (*Hospital, error)
	List(ctx context.Context, params PaginationParams) ([]*Hospital, int, error)
	Update(ctx context.Context, hospital *Hospital) error
	Delete(ctx context.Context, id string) error
}
