package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"membership_backend/internal/feature/auth/domain/entity"
)

// mockAccountRepository is a mock implementation of the AccountRepository interface.
type mockAccountRepository struct {
	FindByEmailFunc func(ctx context.Context, email string) (*entity.Account, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*entity.Account, error)
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrAccountNotFound
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrAccountNotFound
}

// mockTokenGenerator is a mock implementation of the TokenGenerator interface.
type mockTokenGenerator struct {
	GenerateTokenFunc func(accountID uint, email, role string) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(accountID uint, email, role string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(accountID, email, role)
	}
	return "mock-jwt-token", nil
}

func testAccount(t *testing.T, password string) *entity.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &entity.Account{
		ID:       1,
		Name:     "Abdul Rahman",
		Email:    "abdul@example.com",
		Password: string(hash),
		Role:     entity.RoleMember,
	}
}

func TestAuthUsecase_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		account := testAccount(t, "555")
		repo := &mockAccountRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.Account, error) {
				if email == account.Email {
					return account, nil
				}
				return nil, ErrAccountNotFound
			},
		}
		var tokenRole string
		tokens := &mockTokenGenerator{
			GenerateTokenFunc: func(accountID uint, email, role string) (string, error) {
				tokenRole = role
				return "signed-token", nil
			},
		}
		uc := NewAuthUsecase(repo, tokens, AdminCredentials{})

		token, role, err := uc.Login(context.Background(), "abdul@example.com", "555")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "signed-token" {
			t.Errorf("unexpected token: %q", token)
		}
		if role != entity.RoleMember || tokenRole != entity.RoleMember {
			t.Errorf("expected member role, got %q / %q", role, tokenRole)
		}
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		account := testAccount(t, "555")
		var lookedUp string
		repo := &mockAccountRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.Account, error) {
				lookedUp = email
				return account, nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenGenerator{}, AdminCredentials{})

		if _, _, err := uc.Login(context.Background(), "  Abdul@Example.COM ", "555"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lookedUp != "abdul@example.com" {
			t.Errorf("expected normalized email, got %q", lookedUp)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		account := testAccount(t, "555")
		repo := &mockAccountRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.Account, error) {
				return account, nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenGenerator{}, AdminCredentials{})

		_, _, err := uc.Login(context.Background(), "abdul@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown account yields the same error", func(t *testing.T) {
		uc := NewAuthUsecase(&mockAccountRepository{}, &mockTokenGenerator{}, AdminCredentials{})

		_, _, err := uc.Login(context.Background(), "ghost@example.com", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthUsecase_AdminLogin(t *testing.T) {
	admin := AdminCredentials{Email: "admin@example.com", Password: "admin-pass"}

	t.Run("successful admin login", func(t *testing.T) {
		var gotID uint
		var gotRole string
		tokens := &mockTokenGenerator{
			GenerateTokenFunc: func(accountID uint, email, role string) (string, error) {
				gotID = accountID
				gotRole = role
				return "admin-token", nil
			},
		}
		uc := NewAuthUsecase(&mockAccountRepository{}, tokens, admin)

		token, err := uc.AdminLogin(context.Background(), "admin@example.com", "admin-pass")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "admin-token" {
			t.Errorf("unexpected token: %q", token)
		}
		if gotID != 0 {
			t.Errorf("admin token subject should be zero, got %d", gotID)
		}
		if gotRole != entity.RoleAdmin {
			t.Errorf("expected admin role, got %q", gotRole)
		}
	})

	t.Run("wrong credentials", func(t *testing.T) {
		uc := NewAuthUsecase(&mockAccountRepository{}, &mockTokenGenerator{}, admin)

		if _, err := uc.AdminLogin(context.Background(), "admin@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := uc.AdminLogin(context.Background(), "other@example.com", "admin-pass"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("admin login disabled when credentials are unset", func(t *testing.T) {
		uc := NewAuthUsecase(&mockAccountRepository{}, &mockTokenGenerator{}, AdminCredentials{})

		_, err := uc.AdminLogin(context.Background(), "", "")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthUsecase_CurrentAccount(t *testing.T) {
	account := testAccount(t, "555")
	repo := &mockAccountRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.Account, error) {
			if id == 1 {
				return account, nil
			}
			return nil, ErrAccountNotFound
		},
	}
	uc := NewAuthUsecase(repo, &mockTokenGenerator{}, AdminCredentials{})

	got, err := uc.CurrentAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != account.Email {
		t.Errorf("unexpected account: %+v", got)
	}

	if _, err := uc.CurrentAccount(context.Background(), 2); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
