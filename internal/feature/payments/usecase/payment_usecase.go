package usecase

import (
	"context"

	"membership_backend/internal/feature/payments/domain/entity"
)

// PayerInfo is the submitting member's summary joined onto an admin listing.
type PayerInfo struct {
	Name     string
	Email    string
	MemberID string
}

// PaymentWithPayer pairs a payment with its submitter for admin review.
type PaymentWithPayer struct {
	entity.Payment
	Payer PayerInfo
}

// ListFilter narrows an admin payment listing.
type ListFilter struct {
	// Status filters by payment status when non-empty.
	Status string
	// Category filters by payment category when non-empty.
	Category string
}

// PaymentRepository abstracts the persistence layer for payments.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, p *entity.Payment) error

	// FindByID retrieves a payment by ID, or ErrPaymentNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Payment, error)

	// ListByAccount returns the account's payments, newest first.
	ListByAccount(ctx context.Context, accountID uint) ([]entity.Payment, error)

	// ListAll returns all payments matching the filter, newest first,
	// each joined with its submitter's name, email and member ID.
	ListAll(ctx context.Context, filter ListFilter) ([]PaymentWithPayer, error)

	// Save persists changes to an existing payment.
	Save(ctx context.Context, p *entity.Payment) error

	// CountByStatus counts payments with the given status.
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// SubmitInput is a member's payment submission.
type SubmitInput struct {
	Category   string
	Amount     float64
	Screenshot string
	Note       string
}

// paymentUsecase implements payment operations.
type paymentUsecase struct {
	payments PaymentRepository
}

// NewPaymentUsecase creates a new instance of paymentUsecase.
func NewPaymentUsecase(payments PaymentRepository) *paymentUsecase {
	return &paymentUsecase{payments: payments}
}

// Submit records a payment for the given account in pending status.
func (u *paymentUsecase) Submit(ctx context.Context, accountID uint, in SubmitInput) (*entity.Payment, error) {
	if !entity.ValidCategory(in.Category) {
		return nil, ErrInvalidCategory
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.Screenshot == "" {
		return nil, ErrScreenshotRequired
	}
	payment := &entity.Payment{
		AccountID:  accountID,
		Category:   in.Category,
		Amount:     in.Amount,
		Screenshot: in.Screenshot,
		Note:       in.Note,
		Status:     entity.StatusPending,
	}
	if err := u.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListMine returns the caller's own payments, newest first.
func (u *paymentUsecase) ListMine(ctx context.Context, accountID uint) ([]entity.Payment, error) {
	return u.payments.ListByAccount(ctx, accountID)
}

// ListAll returns the filtered admin payment listing with payer details.
func (u *paymentUsecase) ListAll(ctx context.Context, filter ListFilter) ([]PaymentWithPayer, error) {
	if filter.Status != "" && !entity.ValidStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	if filter.Category != "" && !entity.ValidCategory(filter.Category) {
		return nil, ErrInvalidCategory
	}
	return u.payments.ListAll(ctx, filter)
}

// Get retrieves a single payment by ID.
func (u *paymentUsecase) Get(ctx context.Context, id uint) (*entity.Payment, error) {
	return u.payments.FindByID(ctx, id)
}

// UpdateStatus moves a payment to the given status. Like member statuses,
// transitions are unguarded.
func (u *paymentUsecase) UpdateStatus(ctx context.Context, id uint, status string) (*entity.Payment, error) {
	if !entity.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	payment, err := u.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payment.Status = status
	if err := u.payments.Save(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// CountPending counts payments awaiting review. It feeds the admin
// dashboard summary.
func (u *paymentUsecase) CountPending(ctx context.Context) (int64, error) {
	return u.payments.CountByStatus(ctx, entity.StatusPending)
}
