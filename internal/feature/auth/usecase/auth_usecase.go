package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"membership_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// AccountRepository abstracts the persistence layer for account entities.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type AccountRepository interface {
	// FindByEmail retrieves the account matching the given lowercased email.
	// It returns ErrAccountNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID retrieves an account by ID, or ErrAccountNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Account, error)
}

// TokenGenerator abstracts signed token creation.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (platform/jwt).
type TokenGenerator interface {
	// GenerateToken creates a signed JWT for the given account identity.
	GenerateToken(accountID uint, email, role string) (string, error)
}

// AdminCredentials is the fixed out-of-band administrator login.
// Admins have no stored account; these values come from env configuration.
type AdminCredentials struct {
	Email    string
	Password string
}

// authUsecase implements login for member accounts and the fixed admin identity.
type authUsecase struct {
	accounts AccountRepository
	tokens   TokenGenerator
	admin    AdminCredentials
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(accounts AccountRepository, tokens TokenGenerator, admin AdminCredentials) *authUsecase {
	return &authUsecase{accounts: accounts, tokens: tokens, admin: admin}
}

// Login authenticates a member account and returns a signed JWT and the
// account's role. A bcrypt comparison runs even when the account does not
// exist, to mitigate timing attacks.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, string, error) {
	account, err := u.accounts.FindByEmail(ctx, normalizeEmail(email))

	// Dummy hash so bcrypt.CompareHashAndPassword is always executed.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = account.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(account.ID, account.Email, account.Role)
	if tokenErr != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, account.Role, nil
}

// AdminLogin authenticates against the fixed admin credentials and returns
// an admin-role JWT. The admin identity has no account row; the token's
// subject is zero.
func (u *authUsecase) AdminLogin(ctx context.Context, email, password string) (string, error) {
	if u.admin.Email == "" || u.admin.Password == "" {
		return "", ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(u.admin.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.admin.Password)) == 1
	if !emailOK || !passOK {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(0, email, entity.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// CurrentAccount returns the account for the authenticated caller.
func (u *authUsecase) CurrentAccount(ctx context.Context, id uint) (*entity.Account, error) {
	return u.accounts.FindByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
