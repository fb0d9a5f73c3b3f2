package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"membership_backend/internal/feature/membership/usecase"
)

// CounterModel is the backing row for a named sequence counter.
type CounterModel struct {
	Name string `gorm:"primaryKey;size:64"`
	Seq  uint64 `gorm:"not null"`
}

// TableName overrides the default gorm table name.
func (CounterModel) TableName() string {
	return "sequence_counters"
}

// counterMySQL is the MySQL implementation of the CounterRepository interface.
type counterMySQL struct {
	db *gorm.DB
}

// Compile-time check that counterMySQL implements CounterRepository.
var _ usecase.CounterRepository = (*counterMySQL)(nil)

// NewCounterMySQL creates a new instance of counterMySQL with the given
// gorm.DB connection. Constructor for dependency injection.
func NewCounterMySQL(db *gorm.DB) *counterMySQL {
	return &counterMySQL{db: db}
}

// Next atomically increments the named counter and returns the new value.
// The upsert takes a row lock on the counter, so concurrent callers are
// serialized by the database and never see the same value. No SELECT FOR
// UPDATE, which keeps the statement portable to SQLite in tests.
func (r *counterMySQL) Next(ctx context.Context, name string) (uint64, error) {
	var row CounterModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{"seq": gorm.Expr("seq + ?", 1)}),
		}).Create(&CounterModel{Name: name, Seq: 1}).Error
		if err != nil {
			return err
		}
		return tx.Where("name = ?", name).First(&row).Error
	})
	if err != nil {
		return 0, err
	}
	return row.Seq, nil
}
