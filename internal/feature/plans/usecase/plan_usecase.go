package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"membership_backend/internal/feature/plans/domain/entity"
)

const (
	// FallbackPlanName is the generic plan label used when no plan exists.
	FallbackPlanName = "Membership Plan"
)

// PlanRepository abstracts the persistence layer for plan entities.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type PlanRepository interface {
	// Create persists a new plan. It returns ErrDuplicatePlan when a legacy
	// unique index rejects the insert.
	Create(ctx context.Context, plan *entity.Plan) error

	// FindByID retrieves a plan by its ID, or ErrPlanNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Plan, error)

	// Latest retrieves the most recently created plan, or ErrPlanNotFound
	// when no plan exists.
	Latest(ctx context.Context) (*entity.Plan, error)

	// List retrieves all plans, newest first.
	List(ctx context.Context) ([]entity.Plan, error)

	// Update persists changes to an existing plan.
	Update(ctx context.Context, plan *entity.Plan) error

	// Delete removes a plan by ID, or ErrPlanNotFound.
	Delete(ctx context.Context, id uint) error

	// DropLegacyUniqueIndexes removes unique non-primary indexes left behind
	// by earlier schema versions of the plan table.
	DropLegacyUniqueIndexes(ctx context.Context) error
}

// planUsecase implements plan CRUD and fee resolution.
// Index-repair state is held on the instance so tests can reset it by
// constructing a fresh usecase.
type planUsecase struct {
	plans PlanRepository

	mu             sync.Mutex
	indexesChecked bool
}

// NewPlanUsecase creates a new instance of planUsecase.
func NewPlanUsecase(plans PlanRepository) *planUsecase {
	return &planUsecase{plans: plans}
}

// ensureIndexes drops legacy unique indexes on the plan table, at most once
// per instance unless force is set. Failures are logged, not propagated.
func (u *planUsecase) ensureIndexes(ctx context.Context, force bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.indexesChecked && !force {
		return
	}
	if err := u.plans.DropLegacyUniqueIndexes(ctx); err != nil {
		slog.Warn("plan index cleanup failed", "error", err)
		return
	}
	u.indexesChecked = true
}

// Resolve returns the fee snapshot for the given plan reference.
// Resolution order: the referenced plan if it exists, otherwise the most
// recently created plan, otherwise a zero fee with a generic name.
// planID may be empty or unparsable; both fall through to the latest plan.
func (u *planUsecase) Resolve(ctx context.Context, planID string) (entity.Selection, error) {
	var plan *entity.Plan

	if id, err := strconv.ParseUint(strings.TrimSpace(planID), 10, 64); err == nil && id > 0 {
		p, err := u.plans.FindByID(ctx, uint(id))
		if err != nil && !errors.Is(err, ErrPlanNotFound) {
			return entity.Selection{}, err
		}
		plan = p
	}

	if plan == nil {
		p, err := u.plans.Latest(ctx)
		if err != nil && !errors.Is(err, ErrPlanNotFound) {
			return entity.Selection{}, err
		}
		plan = p
	}

	if plan == nil {
		return entity.Selection{Fee: 0, PlanName: FallbackPlanName}, nil
	}

	return entity.Selection{
		Fee:      plan.Price,
		PlanName: displayName(plan),
		PlanID:   strconv.FormatUint(uint64(plan.ID), 10),
	}, nil
}

// List returns all plans newest first, with blank names normalized.
func (u *planUsecase) List(ctx context.Context) ([]entity.Plan, error) {
	u.ensureIndexes(ctx, false)

	plans, err := u.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].Name = displayName(&plans[i])
	}
	return plans, nil
}

// Create adds a new plan. A duplicate-key conflict from a legacy unique
// index triggers one forced index repair and retry before surfacing.
func (u *planUsecase) Create(ctx context.Context, name string, price float64) (*entity.Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlanNameRequired
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}

	u.ensureIndexes(ctx, true)

	plan := &entity.Plan{Name: name, Price: price}
	err := u.plans.Create(ctx, plan)
	if errors.Is(err, ErrDuplicatePlan) {
		u.ensureIndexes(ctx, true)
		plan = &entity.Plan{Name: name, Price: price}
		err = u.plans.Create(ctx, plan)
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Update changes the name and/or price of an existing plan.
// Nil fields are left untouched.
func (u *planUsecase) Update(ctx context.Context, id uint, name *string, price *float64) (*entity.Plan, error) {
	u.ensureIndexes(ctx, false)

	plan, err := u.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrPlanNameRequired
		}
		plan.Name = trimmed
	}
	if price != nil {
		if *price < 0 {
			return nil, ErrNegativePrice
		}
		plan.Price = *price
	}
	if err := u.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan. Existing member records keep their fee snapshot.
func (u *planUsecase) Delete(ctx context.Context, id uint) error {
	return u.plans.Delete(ctx, id)
}

// displayName returns the plan name, synthesizing a label from the price
// when the stored name is blank.
func displayName(p *entity.Plan) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Plan %v", p.Price)
}
