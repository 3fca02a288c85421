package services

import (
	"hospitaladmin/internal/domain"

	"github.com/google/uuid"
)

// requireID rejects ids that cannot name a stored row.
func requireID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}
