package repository

import (
	"context"

	"github.com/skawamoto/campusboard/internal/database"
	"github.com/skawamoto/campusboard/internal/models"
	"gorm.io/gorm"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// Create creates a new directory entry
func (r *GormProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindByID finds a directory entry by ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListAll retrieves the full directory, oldest first
func (r *GormProfileRepository) ListAll(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Scopes(database.CreationOrder).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Delete soft deletes a directory entry
func (r *GormProfileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Profile{}).Error
}
