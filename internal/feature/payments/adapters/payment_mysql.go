// Package adapters provides the repository implementations for the payments feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"membership_backend/internal/feature/payments/domain/entity"
	"membership_backend/internal/feature/payments/usecase"
)

// paymentMySQL is the MySQL implementation of the PaymentRepository interface.
type paymentMySQL struct {
	db *gorm.DB
}

// Compile-time check that paymentMySQL implements PaymentRepository.
var _ usecase.PaymentRepository = (*paymentMySQL)(nil)

// NewPaymentMySQL creates a new instance of paymentMySQL with the given
// gorm.DB connection. Constructor for dependency injection.
func NewPaymentMySQL(db *gorm.DB) *paymentMySQL {
	return &paymentMySQL{db: db}
}

// Create adds a payment to the database.
func (r *paymentMySQL) Create(ctx context.Context, p *entity.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID retrieves a payment by ID.
func (r *paymentMySQL) FindByID(ctx context.Context, id uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByAccount returns the account's payments, newest first.
func (r *paymentMySQL) ListByAccount(ctx context.Context, accountID uint) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// paymentPayerRow is the flat scan target of the admin listing join.
type paymentPayerRow struct {
	entity.Payment
	PayerName     string
	PayerEmail    string
	PayerMemberID string
}

// ListAll returns all payments matching the filter, newest first, joined
// with the submitting account and, through the shared email, the member
// record's human-readable ID.
func (r *paymentMySQL) ListAll(ctx context.Context, filter usecase.ListFilter) ([]usecase.PaymentWithPayer, error) {
	q := r.db.WithContext(ctx).
		Table("payments").
		Select("payments.*, accounts.name AS payer_name, accounts.email AS payer_email, members.member_id AS payer_member_id").
		Joins("LEFT JOIN accounts ON accounts.id = payments.account_id").
		Joins("LEFT JOIN members ON members.email = accounts.email")
	if filter.Status != "" {
		q = q.Where("payments.status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("payments.category = ?", filter.Category)
	}

	var rows []paymentPayerRow
	if err := q.Order("payments.created_at DESC, payments.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]usecase.PaymentWithPayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.PaymentWithPayer{
			Payment: row.Payment,
			Payer: usecase.PayerInfo{
				Name:     row.PayerName,
				Email:    row.PayerEmail,
				MemberID: row.PayerMemberID,
			},
		})
	}
	return out, nil
}

// Save persists changes to an existing payment.
func (r *paymentMySQL) Save(ctx context.Context, p *entity.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// CountByStatus counts payments with the given status.
func (r *paymentMySQL) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&entity.Payment{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}
