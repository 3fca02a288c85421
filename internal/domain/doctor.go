package domain

import (
	"context"
	"time"
)

// Doctor is a directory entry for a physician.
// swagger:model Doctor
type Doctor struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Experience     string    `json:"experience"`
	Contact        string    `json:"contact"`
	Email          string    `json:"email"`
	Hospital       bool      `json:"hospital"`
	Availability   string    `json:"availability"`
	Qualifications string    `json:"qualifications"`
	Charges        string    `json:"charges"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Ref returns the reference embedded in schedule listings.
func (d *Doctor) Ref() *DoctorRef {
	return &DoctorRef{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Contact:        d.Contact,
		Email:          d.Email,
	}
}

// DoctorRepository defines the interface for doctor storage
type DoctorRepository interface {
	Create(ctx context.Context, doctor *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	List(ctx context.Context, params PaginationParams) ([]*Doctor, int, error)
	Update(ctx context.Context, doctor *Doctor) error
	Delete(ctx context.Context, id string) error
}

// DoctorService defines the business logic for the doctor directory.
type DoctorService interface {
	Create(ctx context.Context, doctor *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	List(ctx context.Context, params PaginationParams) ([]*Doctor, int, error)
	Update(ctx context.Context, doctor *Doctor) error
	Delete(ctx context.Context, id string) error
}
