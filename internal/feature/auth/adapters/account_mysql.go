// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"membership_backend/internal/feature/auth/domain/entity"
	"membership_backend/internal/feature/auth/usecase"
)

// accountMySQL is the MySQL implementation of the account repository.
// It serves both the auth usecase (reads) and the membership dual-write
// coordinator (paired create/update/delete keyed by email).
type accountMySQL struct {
	db *gorm.DB
}

// Compile-time check that accountMySQL implements the auth repository.
var _ usecase.AccountRepository = (*accountMySQL)(nil)

// NewAccountMySQL creates a new instance of accountMySQL with the given
// gorm.DB connection. Constructor for dependency injection.
func NewAccountMySQL(db *gorm.DB) *accountMySQL {
	return &accountMySQL{db: db}
}

// Create adds an account to the database.
// A duplicate email (MySQL error 1062) maps to usecase.ErrEmailAlreadyExists.
func (r *accountMySQL) Create(ctx context.Context, a *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves an account by its lowercased email.
func (r *accountMySQL) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID retrieves an account by ID.
func (r *accountMySQL) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UpdateProfileByEmail pushes the mirrored member-record fields onto the
// matching account. Missing accounts are a no-op, not an error.
func (r *accountMySQL) UpdateProfileByEmail(ctx context.Context, email string, profile entity.Profile) error {
	return r.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"name":              profile.Name,
			"phone":             profile.Phone,
			"address":           profile.Address,
			"membership_type":   profile.MembershipType,
			"membership_status": profile.MembershipStatus,
		}).Error
}

// DeleteByEmail removes the account matching the given email.
// Missing accounts are a no-op, not an error.
func (r *accountMySQL) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&entity.Account{}).Error
}
