package repositories

import "github.com/fambrifarms/procure/pkg/domain/entities"

// BufferProfileRepository provides access to per-product buffer settings
type BufferProfileRepository interface {
	// GetBufferProfile returns the stored profile for a product. found is
	// false when none exists; callers fall back to department defaults.
	GetBufferProfile(id entities.ProductID) (*entities.BufferProfile, bool, error)
	LoadBufferProfiles(profiles []*entities.BufferProfile) error
}
