// Package usecase implements the business logic for the settings feature.
package usecase

import (
	"context"

	plansentity "membership_backend/internal/feature/plans/domain/entity"
	"membership_backend/internal/feature/settings/domain/entity"
)

// SettingsRepository abstracts the persistence layer for the settings row.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type SettingsRepository interface {
	// Get returns the settings row, or nil when none has been saved yet.
	Get(ctx context.Context) (*entity.Settings, error)

	// Upsert creates or replaces the single settings row.
	Upsert(ctx context.Context, s *entity.Settings) error
}

// PlanLister returns the available plans, newest first. The public payment
// details embed them alongside the bank fields.
type PlanLister interface {
	List(ctx context.Context) ([]plansentity.Plan, error)
}

// UpdateInput carries a payment-details edit; nil fields are left unchanged.
type UpdateInput struct {
	BankName      *string
	AccountName   *string
	AccountNumber *string
	IFSC          *string
	UpiID         *string
}

// PublicDetails is everything a member needs to make a payment: the bank
// and UPI details plus the current default amount and plan list.
type PublicDetails struct {
	Settings      entity.Settings
	DefaultAmount float64
	Plans         []plansentity.Plan
}

// settingsUsecase implements settings operations.
type settingsUsecase struct {
	settings SettingsRepository
	plans    PlanLister
}

// NewSettingsUsecase creates a new instance of settingsUsecase.
func NewSettingsUsecase(settings SettingsRepository, plans PlanLister) *settingsUsecase {
	return &settingsUsecase{settings: settings, plans: plans}
}

// Get returns the admin view of the settings. A never-saved row comes back
// as zero values rather than an error.
func (u *settingsUsecase) Get(ctx context.Context) (*entity.Settings, error) {
	s, err := u.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.Settings{}
	}
	return s, nil
}

// GetPublic composes the member-facing payment details. The default amount
// is the newest plan's price, or zero when no plans exist.
func (u *settingsUsecase) GetPublic(ctx context.Context) (PublicDetails, error) {
	s, err := u.Get(ctx)
	if err != nil {
		return PublicDetails{}, err
	}
	plans, err := u.plans.List(ctx)
	if err != nil {
		return PublicDetails{}, err
	}
	details := PublicDetails{Settings: *s, Plans: plans}
	if len(plans) > 0 {
		details.DefaultAmount = plans[0].Price
	}
	return details, nil
}

// UpdatePaymentDetails applies a partial edit to the bank and UPI fields.
func (u *settingsUsecase) UpdatePaymentDetails(ctx context.Context, in UpdateInput) (*entity.Settings, error) {
	s, err := u.Get(ctx)
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&s.BankName, in.BankName)
	apply(&s.AccountName, in.AccountName)
	apply(&s.AccountNumber, in.AccountNumber)
	apply(&s.IFSC, in.IFSC)
	apply(&s.UpiID, in.UpiID)

	if err := u.settings.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetQRImage replaces the payment QR image path.
func (u *settingsUsecase) SetQRImage(ctx context.Context, path string) (*entity.Settings, error) {
	s, err := u.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.QRImage = path
	if err := u.settings.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
