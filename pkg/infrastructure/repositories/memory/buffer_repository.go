package memory

import (
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// BufferProfileRepository provides in-memory buffer profile storage
type BufferProfileRepository struct {
	profiles map[entities.ProductID]*entities.BufferProfile
}

// NewBufferProfileRepository creates a new in-memory buffer profile repository
func NewBufferProfileRepository() *BufferProfileRepository {
	return &BufferProfileRepository{
		profiles: make(map[entities.ProductID]*entities.BufferProfile),
	}
}

// Verify interface compliance
var _ repositories.BufferProfileRepository = (*BufferProfileRepository)(nil)

// LoadBufferProfiles loads profiles into the repository
func (r *BufferProfileRepository) LoadBufferProfiles(profiles []*entities.BufferProfile) error {
	for _, profile := range profiles {
		r.profiles[profile.ProductID] = profile
	}
	return nil
}

// GetBufferProfile returns the stored profile for a product
func (r *BufferProfileRepository) GetBufferProfile(
	id entities.ProductID,
) (*entities.BufferProfile, bool, error) {
	profile, exists := r.profiles[id]
	return profile, exists, nil
}
