// Package adapters provides the repository implementations for the plans feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"membership_backend/internal/feature/plans/domain/entity"
	"membership_backend/internal/feature/plans/usecase"
)

// planMySQL is the MySQL implementation of the PlanRepository interface.
type planMySQL struct {
	db *gorm.DB
}

// Compile-time check that planMySQL implements PlanRepository.
var _ usecase.PlanRepository = (*planMySQL)(nil)

// NewPlanMySQL creates a new instance of planMySQL with the given gorm.DB
// connection. Constructor for dependency injection.
func NewPlanMySQL(db *gorm.DB) *planMySQL {
	return &planMySQL{db: db}
}

// Create adds a plan to the database.
// A duplicate-key rejection (MySQL error 1062, typically a legacy unique
// index on name or price) maps to usecase.ErrDuplicatePlan.
func (r *planMySQL) Create(ctx context.Context, p *entity.Plan) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrDuplicatePlan
		}
		return err
	}
	return nil
}

// FindByID retrieves a plan by ID.
func (r *planMySQL) FindByID(ctx context.Context, id uint) (*entity.Plan, error) {
	var p entity.Plan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPlanNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Latest retrieves the most recently created plan.
func (r *planMySQL) Latest(ctx context.Context) (*entity.Plan, error) {
	var p entity.Plan
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPlanNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List retrieves all plans, newest first.
func (r *planMySQL) List(ctx context.Context) ([]entity.Plan, error) {
	var plans []entity.Plan
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Update persists changes to an existing plan.
func (r *planMySQL) Update(ctx context.Context, p *entity.Plan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a plan by ID.
func (r *planMySQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Plan{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPlanNotFound
	}
	return nil
}

// DropLegacyUniqueIndexes inspects the plan table and drops every unique
// index that is not the primary key. Earlier schema versions carried unique
// constraints on name and price; they must not survive into this one.
func (r *planMySQL) DropLegacyUniqueIndexes(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	if !migrator.HasTable(&entity.Plan{}) {
		return nil
	}

	indexes, err := migrator.GetIndexes(&entity.Plan{})
	if err != nil {
		return err
	}
	for _, idx := range indexes {
		unique, ok := idx.Unique()
		if !ok || !unique {
			continue
		}
		if primary, ok := idx.PrimaryKey(); ok && primary {
			continue
		}
		if err := migrator.DropIndex(&entity.Plan{}, idx.Name()); err != nil {
			return err
		}
	}
	return nil
}
