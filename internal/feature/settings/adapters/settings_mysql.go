// Package adapters provides the repository implementations for the settings feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"membership_backend/internal/feature/settings/domain/entity"
	"membership_backend/internal/feature/settings/usecase"
)

// settingsRowID pins the settings to a single row.
const settingsRowID = 1

// settingsMySQL is the MySQL implementation of the SettingsRepository interface.
type settingsMySQL struct {
	db *gorm.DB
}

// Compile-time check that settingsMySQL implements SettingsRepository.
var _ usecase.SettingsRepository = (*settingsMySQL)(nil)

// NewSettingsMySQL creates a new instance of settingsMySQL with the given
// gorm.DB connection. Constructor for dependency injection.
func NewSettingsMySQL(db *gorm.DB) *settingsMySQL {
	return &settingsMySQL{db: db}
}

// Get returns the settings row, or nil when none has been saved yet.
func (r *settingsMySQL) Get(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	if err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Upsert creates or replaces the single settings row.
func (r *settingsMySQL) Upsert(ctx context.Context, s *entity.Settings) error {
	s.ID = settingsRowID
	return r.db.WithContext(ctx).Save(s).Error
}
