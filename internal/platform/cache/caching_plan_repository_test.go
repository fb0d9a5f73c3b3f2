package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"membership_backend/internal/feature/plans/domain/entity"
)

// mockPlanRepository is a mock implementation of the PlanRepository interface.
type mockPlanRepository struct {
	createFn   func(ctx context.Context, plan *entity.Plan) error
	findByIDFn func(ctx context.Context, id uint) (*entity.Plan, error)
	latestFn   func(ctx context.Context) (*entity.Plan, error)
	listFn     func(ctx context.Context) ([]entity.Plan, error)
	updateFn   func(ctx context.Context, plan *entity.Plan) error
	deleteFn   func(ctx context.Context, id uint) error
	dropFn     func(ctx context.Context) error
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	if m.createFn != nil {
		return m.createFn(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) FindByID(ctx context.Context, id uint) (*entity.Plan, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanRepository) Latest(ctx context.Context) (*entity.Plan, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx)
	}
	return nil, nil
}

func (m *mockPlanRepository) List(ctx context.Context) ([]entity.Plan, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *entity.Plan) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPlanRepository) DropLegacyUniqueIndexes(ctx context.Context) error {
	if m.dropFn != nil {
		return m.dropFn(ctx)
	}
	return nil
}

func TestNewCachingPlanRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "plans",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "plans",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingPlanRepository(nil, tt.ttl, &mockPlanRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

func TestCachingPlanRepository_FindByID_NilRedis(t *testing.T) {
	t.Parallel()

	expected := &entity.Plan{ID: 1, Name: "Annual", Price: 500}
	inner := &mockPlanRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Plan, error) {
			return expected, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingPlanRepository(nil, 5*time.Minute, inner, "plans")

	plan, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Name != "Annual" {
		t.Errorf("unexpected plan: %+v", plan)
	}
}

func TestCachingPlanRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := &entity.Plan{ID: 1, Name: "Annual", Price: 500}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("plans:id:1").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockPlanRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Plan, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingPlanRepository(rdb, 5*time.Minute, inner, "plans")
	plan, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if plan.Name != "Annual" {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPlanRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := &entity.Plan{ID: 1, Name: "Annual", Price: 500}
	expectedJSON, _ := json.Marshal(expected)

	// Cache miss
	mock.ExpectGet("plans:id:1").RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet("plans:id:1", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPlanRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Plan, error) {
			return expected, nil
		},
	}

	repo := NewCachingPlanRepository(rdb, 5*time.Minute, inner, "plans")
	plan, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Name != "Annual" {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPlanRepository_FindByID_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := &entity.Plan{ID: 1, Name: "Annual", Price: 500}
	expectedJSON, _ := json.Marshal(expected)

	// Return invalid JSON from cache
	mock.ExpectGet("plans:id:1").SetVal("invalid json")
	// Delete corrupted cache
	mock.ExpectDel("plans:id:1").SetVal(1)
	// Set new cache after fetching from inner
	mock.ExpectSet("plans:id:1", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPlanRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Plan, error) {
			return expected, nil
		},
	}

	repo := NewCachingPlanRepository(rdb, 5*time.Minute, inner, "plans")
	plan, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Name != "Annual" {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPlanRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Plan{{ID: 2, Name: "Premium", Price: 900}, {ID: 1, Name: "Annual", Price: 500}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("plans:list").RedisNil()
	mock.ExpectSet("plans:list", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPlanRepository{
		listFn: func(ctx context.Context) ([]entity.Plan, error) {
			return expected, nil
		},
	}

	repo := NewCachingPlanRepository(rdb, 5*time.Minute, inner, "plans")
	plans, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 2 {
		t.Errorf("expected 2 plans, got %d", len(plans))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPlanRepository_Create_InvalidatesCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	// Expect cache invalidation via SCAN and DEL
	mock.ExpectScan(0, "plans:*", 200).SetVal([]string{"plans:list", "plans:latest"}, 0)
	mock.ExpectDel("plans:list", "plans:latest").SetVal(2)

	repo := NewCachingPlanRepository(rdb, 5*time.Minute, &mockPlanRepository{}, "plans")
	err := repo.Create(context.Background(), &entity.Plan{Name: "Annual", Price: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPlanRepository_Create_InnerError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("insert failed")
	inner := &mockPlanRepository{
		createFn: func(ctx context.Context, plan *entity.Plan) error {
			return expectedErr
		},
	}

	repo := NewCachingPlanRepository(nil, 5*time.Minute, inner, "plans")
	err := repo.Create(context.Background(), &entity.Plan{Name: "Annual"})

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestCachingPlanRepository_Latest_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")

	mock.ExpectGet("plans:latest").RedisNil()

	inner := &mockPlanRepository{
		latestFn: func(ctx context.Context) (*entity.Plan, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingPlanRepository(rdb, 5*time.Minute, inner, "plans")
	_, err := repo.Latest(context.Background())

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}
