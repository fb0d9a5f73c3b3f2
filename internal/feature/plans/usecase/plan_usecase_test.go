package usecase

import (
	"context"
	"errors"
	"testing"

	"membership_backend/internal/feature/plans/domain/entity"
)

// mockPlanRepository is a mock implementation of the PlanRepository interface.
type mockPlanRepository struct {
	CreateFunc                  func(ctx context.Context, plan *entity.Plan) error
	FindByIDFunc                func(ctx context.Context, id uint) (*entity.Plan, error)
	LatestFunc                  func(ctx context.Context) (*entity.Plan, error)
	ListFunc                    func(ctx context.Context) ([]entity.Plan, error)
	UpdateFunc                  func(ctx context.Context, plan *entity.Plan) error
	DeleteFunc                  func(ctx context.Context, id uint) error
	DropLegacyUniqueIndexesFunc func(ctx context.Context) error
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) FindByID(ctx context.Context, id uint) (*entity.Plan, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrPlanNotFound
}

func (m *mockPlanRepository) Latest(ctx context.Context) (*entity.Plan, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return nil, ErrPlanNotFound
}

func (m *mockPlanRepository) List(ctx context.Context) ([]entity.Plan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *entity.Plan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPlanRepository) DropLegacyUniqueIndexes(ctx context.Context) error {
	if m.DropLegacyUniqueIndexesFunc != nil {
		return m.DropLegacyUniqueIndexesFunc(ctx)
	}
	return nil
}

func TestPlanUsecase_Resolve(t *testing.T) {
	annual := &entity.Plan{ID: 1, Name: "Annual", Price: 500}
	premium := &entity.Plan{ID: 2, Name: "Premium", Price: 900}

	t.Run("referenced plan wins", func(t *testing.T) {
		repo := &mockPlanRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Plan, error) {
				if id == 1 {
					return annual, nil
				}
				return nil, ErrPlanNotFound
			},
		}
		uc := NewPlanUsecase(repo)

		sel, err := uc.Resolve(context.Background(), "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Fee != 500 || sel.PlanName != "Annual" || sel.PlanID != "1" {
			t.Errorf("unexpected selection: %+v", sel)
		}
	})

	t.Run("dangling reference falls back to the latest plan", func(t *testing.T) {
		repo := &mockPlanRepository{
			LatestFunc: func(ctx context.Context) (*entity.Plan, error) {
				return premium, nil
			},
		}
		uc := NewPlanUsecase(repo)

		sel, err := uc.Resolve(context.Background(), "99")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Fee != 900 || sel.PlanName != "Premium" {
			t.Errorf("unexpected selection: %+v", sel)
		}
	})

	t.Run("empty reference falls back to the latest plan", func(t *testing.T) {
		repo := &mockPlanRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Plan, error) {
				t.Error("FindByID should not be called for an empty reference")
				return nil, ErrPlanNotFound
			},
			LatestFunc: func(ctx context.Context) (*entity.Plan, error) {
				return premium, nil
			},
		}
		uc := NewPlanUsecase(repo)

		sel, err := uc.Resolve(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.PlanName != "Premium" {
			t.Errorf("unexpected selection: %+v", sel)
		}
	})

	t.Run("no plans at all yields the generic zero-fee selection", func(t *testing.T) {
		uc := NewPlanUsecase(&mockPlanRepository{})

		sel, err := uc.Resolve(context.Background(), "5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Fee != 0 || sel.PlanName != FallbackPlanName || sel.PlanID != "" {
			t.Errorf("unexpected selection: %+v", sel)
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		dbErr := errors.New("connection lost")
		repo := &mockPlanRepository{
			LatestFunc: func(ctx context.Context) (*entity.Plan, error) {
				return nil, dbErr
			},
		}
		uc := NewPlanUsecase(repo)

		_, err := uc.Resolve(context.Background(), "")
		if !errors.Is(err, dbErr) {
			t.Errorf("expected repository error, got %v", err)
		}
	})
}

func TestPlanUsecase_Create(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		uc := NewPlanUsecase(&mockPlanRepository{})

		if _, err := uc.Create(context.Background(), "  ", 10); !errors.Is(err, ErrPlanNameRequired) {
			t.Errorf("expected ErrPlanNameRequired, got %v", err)
		}
		if _, err := uc.Create(context.Background(), "Annual", -1); !errors.Is(err, ErrNegativePrice) {
			t.Errorf("expected ErrNegativePrice, got %v", err)
		}
	})

	t.Run("retries once after repairing legacy indexes", func(t *testing.T) {
		createCalls := 0
		dropCalls := 0
		repo := &mockPlanRepository{
			CreateFunc: func(ctx context.Context, plan *entity.Plan) error {
				createCalls++
				if createCalls == 1 {
					return ErrDuplicatePlan
				}
				plan.ID = 1
				return nil
			},
			DropLegacyUniqueIndexesFunc: func(ctx context.Context) error {
				dropCalls++
				return nil
			},
		}
		uc := NewPlanUsecase(repo)

		plan, err := uc.Create(context.Background(), "Annual", 500)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.ID != 1 {
			t.Errorf("unexpected plan: %+v", plan)
		}
		if createCalls != 2 {
			t.Errorf("expected one retry, got %d create calls", createCalls)
		}
		if dropCalls != 2 {
			t.Errorf("expected index repair before and between attempts, got %d", dropCalls)
		}
	})

	t.Run("persistent duplicate surfaces", func(t *testing.T) {
		repo := &mockPlanRepository{
			CreateFunc: func(ctx context.Context, plan *entity.Plan) error {
				return ErrDuplicatePlan
			},
		}
		uc := NewPlanUsecase(repo)

		_, err := uc.Create(context.Background(), "Annual", 500)
		if !errors.Is(err, ErrDuplicatePlan) {
			t.Errorf("expected ErrDuplicatePlan, got %v", err)
		}
	})

	t.Run("index repair failure does not block creation", func(t *testing.T) {
		repo := &mockPlanRepository{
			DropLegacyUniqueIndexesFunc: func(ctx context.Context) error {
				return errors.New("no such table")
			},
		}
		uc := NewPlanUsecase(repo)

		if _, err := uc.Create(context.Background(), "Annual", 500); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestPlanUsecase_List_NormalizesBlankNames(t *testing.T) {
	repo := &mockPlanRepository{
		ListFunc: func(ctx context.Context) ([]entity.Plan, error) {
			return []entity.Plan{
				{ID: 2, Name: "", Price: 900},
				{ID: 1, Name: "Annual", Price: 500},
			}, nil
		},
	}
	uc := NewPlanUsecase(repo)

	plans, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plans[0].Name != "Plan 900" {
		t.Errorf("expected synthesized name, got %q", plans[0].Name)
	}
	if plans[1].Name != "Annual" {
		t.Errorf("expected stored name, got %q", plans[1].Name)
	}
}

func TestPlanUsecase_Update(t *testing.T) {
	t.Run("nil fields untouched", func(t *testing.T) {
		repo := &mockPlanRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Plan, error) {
				return &entity.Plan{ID: 1, Name: "Annual", Price: 500}, nil
			},
		}
		uc := NewPlanUsecase(repo)

		price := 700.0
		plan, err := uc.Update(context.Background(), 1, nil, &price)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.Name != "Annual" || plan.Price != 700 {
			t.Errorf("unexpected plan: %+v", plan)
		}
	})

	t.Run("missing plan", func(t *testing.T) {
		uc := NewPlanUsecase(&mockPlanRepository{})

		_, err := uc.Update(context.Background(), 9, nil, nil)
		if !errors.Is(err, ErrPlanNotFound) {
			t.Errorf("expected ErrPlanNotFound, got %v", err)
		}
	})
}
