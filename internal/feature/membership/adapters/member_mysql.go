// Package adapters provides the repository implementations for the membership feature.
package adapters

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"membership_backend/internal/feature/membership/domain/entity"
	"membership_backend/internal/feature/membership/usecase"
)

// memberMySQL is the MySQL implementation of the MemberRepository interface.
type memberMySQL struct {
	db *gorm.DB
}

// Compile-time check that memberMySQL implements MemberRepository.
var _ usecase.MemberRepository = (*memberMySQL)(nil)

// NewMemberMySQL creates a new instance of memberMySQL with the given gorm.DB
// connection. Constructor for dependency injection.
func NewMemberMySQL(db *gorm.DB) *memberMySQL {
	return &memberMySQL{db: db}
}

// Create adds a member record to the database.
func (r *memberMySQL) Create(ctx context.Context, m *entity.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByID retrieves a member by database ID.
func (r *memberMySQL) FindByID(ctx context.Context, id uint) (*entity.Member, error) {
	var m entity.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByIdentifier retrieves a member by database ID or member ID. A numeric
// identifier matches either column; anything else matches member_id only.
func (r *memberMySQL) FindByIdentifier(ctx context.Context, identifier string) (*entity.Member, error) {
	q := r.db.WithContext(ctx)
	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		q = q.Where("id = ? OR member_id = ?", id, identifier)
	} else {
		q = q.Where("member_id = ?", identifier)
	}

	var m entity.Member
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByEmail retrieves a member by lowercased email.
func (r *memberMySQL) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	var m entity.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns the filtered page of members, newest first, plus the total
// match count.
func (r *memberMySQL) List(ctx context.Context, filter usecase.ListFilter) ([]entity.Member, int64, error) {
	q := applyFilter(r.db.WithContext(ctx).Model(&entity.Member{}), filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []entity.Member
	err := q.Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ListAll returns every member, newest first.
func (r *memberMySQL) ListAll(ctx context.Context) ([]entity.Member, error) {
	var members []entity.Member
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Save persists changes to an existing member record.
func (r *memberMySQL) Save(ctx context.Context, m *entity.Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete removes a member record by database ID.
func (r *memberMySQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Member{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrMemberNotFound
	}
	return nil
}

// Count counts members matching status and type; empty strings match all.
func (r *memberMySQL) Count(ctx context.Context, status, membershipType string) (int64, error) {
	filter := usecase.ListFilter{Status: status, Type: membershipType}
	var total int64
	err := applyFilter(r.db.WithContext(ctx).Model(&entity.Member{}), filter).Count(&total).Error
	return total, err
}

// applyFilter translates a ListFilter into WHERE clauses. Both spellings of
// the one-time type are stored in the wild, so either requested form matches
// the pair.
func applyFilter(q *gorm.DB, filter usecase.ListFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	switch filter.Type {
	case "":
	case entity.TypeOneTime, entity.TypeOneTimeLegacy:
		q = q.Where("membership_type IN ?", []string{entity.TypeOneTime, entity.TypeOneTimeLegacy})
	default:
		q = q.Where("membership_type = ?", filter.Type)
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		if filter.PublicSearch {
			q = q.Where("LOWER(full_name) LIKE ? OR LOWER(member_id) LIKE ?", pattern, pattern)
		} else {
			q = q.Where(
				"LOWER(full_name) LIKE ? OR LOWER(member_id) LIKE ? OR LOWER(email) LIKE ? OR mobile LIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
	}
	return q
}
