package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	authentity "membership_backend/internal/feature/auth/domain/entity"
	authusecase "membership_backend/internal/feature/auth/usecase"
	"membership_backend/internal/feature/membership/domain/entity"
	plansentity "membership_backend/internal/feature/plans/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// memberCounterName is the sequence counter key for member IDs.
	memberCounterName = "member"

	// DefaultPageSize is the page size applied when none is requested.
	DefaultPageSize = 10
	// MaxPageSize caps the requested page size.
	MaxPageSize = 100
)

// ListFilter narrows and pages a member listing.
type ListFilter struct {
	// Status filters by member status when non-empty.
	Status string
	// Type filters by membership type; the legacy "onetime" spelling is
	// matched together with "one-time".
	Type string
	// Query is a case-insensitive substring match over name, email, mobile
	// and member ID. PublicSearch restricts it to name and member ID.
	Query        string
	PublicSearch bool

	Page  int
	Limit int
}

// MemberRepository abstracts the persistence layer for member records.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type MemberRepository interface {
	// Create persists a new member record.
	Create(ctx context.Context, m *entity.Member) error

	// FindByID retrieves a member by database ID, or ErrMemberNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Member, error)

	// FindByIdentifier retrieves a member by database ID or member ID,
	// or ErrMemberNotFound.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.Member, error)

	// FindByEmail retrieves a member by lowercased email, or ErrMemberNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.Member, error)

	// List returns the filtered page of members, newest first, and the
	// total match count.
	List(ctx context.Context, filter ListFilter) ([]entity.Member, int64, error)

	// ListAll returns every member, newest first.
	ListAll(ctx context.Context) ([]entity.Member, error)

	// Save persists changes to an existing member record.
	Save(ctx context.Context, m *entity.Member) error

	// Delete removes a member record by database ID, or ErrMemberNotFound.
	Delete(ctx context.Context, id uint) error

	// Count counts members matching the given status and type;
	// empty strings match everything.
	Count(ctx context.Context, status, membershipType string) (int64, error)
}

// AccountRepository is the membership feature's view of the account store,
// used for the paired writes of the dual-write coordinator.
type AccountRepository interface {
	Create(ctx context.Context, a *authentity.Account) error
	FindByEmail(ctx context.Context, email string) (*authentity.Account, error)
	FindByID(ctx context.Context, id uint) (*authentity.Account, error)

	// UpdateProfileByEmail mirrors member-record fields onto the matching
	// account. Missing accounts are a no-op.
	UpdateProfileByEmail(ctx context.Context, email string, profile authentity.Profile) error

	// DeleteByEmail removes the matching account. Missing accounts are a no-op.
	DeleteByEmail(ctx context.Context, email string) error
}

// TxRunner executes fn with member and account repositories bound to one
// database transaction. If fn returns an error, every write inside it is
// rolled back, so a failed account write never leaves an orphaned member.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(members MemberRepository, accounts AccountRepository) error) error
}

// CounterRepository abstracts the atomic sequence counter.
type CounterRepository interface {
	// Next atomically increments the named counter and returns the
	// post-increment value. Concurrent callers never observe the same value.
	Next(ctx context.Context, name string) (uint64, error)
}

// PlanResolver resolves a plan reference to a fee snapshot.
type PlanResolver interface {
	Resolve(ctx context.Context, planID string) (plansentity.Selection, error)
}

// PendingPaymentCounter counts payments awaiting review, for the dashboard.
type PendingPaymentCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

// ApplyInput is the public membership application payload.
type ApplyInput struct {
	FullName          string
	FatherName        string
	Mobile            string
	Email             string
	Address           string
	Occupation        string
	AnnualIncome      float64
	MembershipPriceID string
	ProfileImage      string
}

// AdminCreateInput is the admin member-creation payload.
type AdminCreateInput struct {
	ApplyInput
	// Password overrides the default (the mobile number) when non-empty.
	Password string
	// Status defaults to approved when empty.
	Status string
}

// UpdateInput carries an admin member edit; nil fields are left unchanged.
type UpdateInput struct {
	FullName          *string
	FatherName        *string
	Mobile            *string
	Email             *string
	Address           *string
	Occupation        *string
	AnnualIncome      *float64
	MembershipPriceID *string
	ProfileImage      *string
	Status            *string
}

func (in *ApplyInput) validate() error {
	required := map[string]string{
		"fullName":   in.FullName,
		"fatherName": in.FatherName,
		"mobile":     in.Mobile,
		"email":      in.Email,
		"address":    in.Address,
		"occupation": in.Occupation,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
		}
	}
	if in.AnnualIncome < 0 {
		return fmt.Errorf("%w: annualIncome must not be negative", ErrInvalidInput)
	}
	return nil
}

// memberUsecase implements member record operations and coordinates the
// paired account writes.
type memberUsecase struct {
	members  MemberRepository
	accounts AccountRepository
	counters CounterRepository
	plans    PlanResolver
	payments PendingPaymentCounter
	tx       TxRunner
}

// NewMemberUsecase creates a new instance of memberUsecase.
func NewMemberUsecase(
	members MemberRepository,
	accounts AccountRepository,
	counters CounterRepository,
	plans PlanResolver,
	payments PendingPaymentCounter,
	tx TxRunner,
) *memberUsecase {
	return &memberUsecase{
		members:  members,
		accounts: accounts,
		counters: counters,
		plans:    plans,
		payments: payments,
		tx:       tx,
	}
}

// nextMemberID allocates the next sequential member ID.
// The counter increments in its own short transaction before the dual write;
// a rolled-back application burns the number, which keeps IDs never-reused.
// Beyond 99999 within a year the zero padding simply widens.
func (u *memberUsecase) nextMemberID(ctx context.Context) (string, error) {
	seq, err := u.counters.Next(ctx, memberCounterName)
	if err != nil {
		return "", fmt.Errorf("failed to allocate member id: %w", err)
	}
	return fmt.Sprintf("MBR-%d-%05d", time.Now().Year(), seq), nil
}

// Apply registers a public membership application.
// The member record and, when absent, the paired account are created in one
// transaction. The default account password is the applicant's mobile number
// (a documented weak default), hashed before it reaches storage.
func (u *memberUsecase) Apply(ctx context.Context, in ApplyInput) (*entity.Member, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)

	selection, err := u.plans.Resolve(ctx, in.MembershipPriceID)
	if err != nil {
		return nil, err
	}
	memberID, err := u.nextMemberID(ctx)
	if err != nil {
		return nil, err
	}

	member := newMember(memberID, in, email, selection)
	member.Status = entity.StatusPending

	err = u.tx.WithinTx(ctx, func(members MemberRepository, accounts AccountRepository) error {
		if err := members.Create(ctx, member); err != nil {
			return err
		}
		_, err := accounts.FindByEmail(ctx, email)
		if errors.Is(err, authusecase.ErrAccountNotFound) {
			account, err := newMemberAccount(member, in.Mobile)
			if err != nil {
				return err
			}
			return accounts.Create(ctx, account)
		}
		// Existing account stays untouched; any other lookup error aborts.
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// CreateByAdmin creates a member record and its paired account in one
// transaction. It conflicts when an account already exists for the email.
// Status defaults to approved unless explicitly overridden.
func (u *memberUsecase) CreateByAdmin(ctx context.Context, in AdminCreateInput) (*entity.Member, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.StatusApproved
	}
	if !entity.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	email := normalizeEmail(in.Email)

	if _, err := u.accounts.FindByEmail(ctx, email); err == nil {
		return nil, authusecase.ErrEmailAlreadyExists
	} else if !errors.Is(err, authusecase.ErrAccountNotFound) {
		return nil, err
	}

	selection, err := u.plans.Resolve(ctx, in.MembershipPriceID)
	if err != nil {
		return nil, err
	}
	memberID, err := u.nextMemberID(ctx)
	if err != nil {
		return nil, err
	}

	member := newMember(memberID, in.ApplyInput, email, selection)
	member.Status = status

	password := in.Password
	if password == "" {
		password = in.Mobile
	}

	err = u.tx.WithinTx(ctx, func(members MemberRepository, accounts AccountRepository) error {
		account, err := newMemberAccount(member, password)
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, account); err != nil {
			return err
		}
		return members.Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Update applies an admin edit to a member record and mirrors the
// denormalized fields onto the paired account in the same transaction.
// When a plan reference is part of the edit, the fee snapshot is recomputed
// so fee and plan name never desynchronize from the newly chosen plan.
func (u *memberUsecase) Update(ctx context.Context, id uint, in UpdateInput) (*entity.Member, error) {
	member, err := u.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	applyString(&member.FullName, in.FullName)
	applyString(&member.FatherName, in.FatherName)
	applyString(&member.Mobile, in.Mobile)
	applyString(&member.Address, in.Address)
	applyString(&member.Occupation, in.Occupation)
	applyString(&member.ProfileImage, in.ProfileImage)
	if in.Email != nil {
		member.Email = normalizeEmail(*in.Email)
	}
	if in.AnnualIncome != nil {
		if *in.AnnualIncome < 0 {
			return nil, fmt.Errorf("%w: annualIncome must not be negative", ErrInvalidInput)
		}
		member.AnnualIncome = *in.AnnualIncome
	}
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		member.Status = *in.Status
	}
	if in.MembershipPriceID != nil && strings.TrimSpace(*in.MembershipPriceID) != "" {
		selection, err := u.plans.Resolve(ctx, *in.MembershipPriceID)
		if err != nil {
			return nil, err
		}
		member.MembershipPlanID = selection.PlanID
		member.MembershipPlanName = selection.PlanName
		member.MembershipFee = selection.Fee
		member.MembershipType = entity.TypeOneTime
	}

	err = u.tx.WithinTx(ctx, func(members MemberRepository, accounts AccountRepository) error {
		if err := members.Save(ctx, member); err != nil {
			return err
		}
		return accounts.UpdateProfileByEmail(ctx, member.Email, accountProfile(member))
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateStatus sets the member status and mirrors it onto the paired
// account. Any value in the enumerated set is accepted at any time;
// there is deliberately no transition guard.
func (u *memberUsecase) UpdateStatus(ctx context.Context, id uint, status string) (*entity.Member, error) {
	if !entity.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	member, err := u.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	member.Status = status

	err = u.tx.WithinTx(ctx, func(members MemberRepository, accounts AccountRepository) error {
		if err := members.Save(ctx, member); err != nil {
			return err
		}
		return accounts.UpdateProfileByEmail(ctx, member.Email, accountProfile(member))
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member record and its paired account in one transaction.
// A missing paired account does not fail the delete.
func (u *memberUsecase) Delete(ctx context.Context, id uint) error {
	return u.tx.WithinTx(ctx, func(members MemberRepository, accounts AccountRepository) error {
		member, err := members.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := members.Delete(ctx, member.ID); err != nil {
			return err
		}
		return accounts.DeleteByEmail(ctx, member.Email)
	})
}

// List returns the filtered, paged member listing for administrators.
func (u *memberUsecase) List(ctx context.Context, filter ListFilter) ([]entity.Member, int64, error) {
	normalizeFilter(&filter)
	return u.members.List(ctx, filter)
}

// PublicList returns the approved-members directory, searchable by name
// and member ID only.
func (u *memberUsecase) PublicList(ctx context.Context, query string, page, limit int) ([]entity.Member, int64, error) {
	filter := ListFilter{
		Status:       entity.StatusApproved,
		Query:        query,
		PublicSearch: true,
		Page:         page,
		Limit:        limit,
	}
	normalizeFilter(&filter)
	return u.members.List(ctx, filter)
}

// GetByIdentifier retrieves a member by database ID or member ID. When the
// identifier instead matches an account, the lookup follows the account's
// email to the member record.
func (u *memberUsecase) GetByIdentifier(ctx context.Context, identifier string) (*entity.Member, error) {
	identifier = strings.TrimSpace(identifier)
	member, err := u.members.FindByIdentifier(ctx, identifier)
	if err == nil || !errors.Is(err, ErrMemberNotFound) {
		return member, err
	}

	if id, parseErr := strconv.ParseUint(identifier, 10, 64); parseErr == nil {
		account, accErr := u.accounts.FindByID(ctx, uint(id))
		if accErr == nil {
			return u.members.FindByEmail(ctx, normalizeEmail(account.Email))
		}
		if !errors.Is(accErr, authusecase.ErrAccountNotFound) {
			return nil, accErr
		}
	}
	return nil, ErrMemberNotFound
}

// ProfileByAccountID returns the member record paired with the caller's
// account, for the self-service profile view.
func (u *memberUsecase) ProfileByAccountID(ctx context.Context, accountID uint) (*entity.Member, error) {
	account, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, authusecase.ErrAccountNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return u.members.FindByEmail(ctx, normalizeEmail(account.Email))
}

// Stats returns the public approved-member counters.
func (u *memberUsecase) Stats(ctx context.Context) (entity.Stats, error) {
	var s entity.Stats
	var err error
	if s.TotalMembers, err = u.members.Count(ctx, entity.StatusApproved, ""); err != nil {
		return s, err
	}
	if s.LifetimeMembers, err = u.members.Count(ctx, entity.StatusApproved, entity.TypeLifetime); err != nil {
		return s, err
	}
	if s.OneTimeMembers, err = u.members.Count(ctx, entity.StatusApproved, entity.TypeOneTime); err != nil {
		return s, err
	}
	return s, nil
}

// Summary returns the admin dashboard counters, including payments
// awaiting review.
func (u *memberUsecase) Summary(ctx context.Context) (entity.Summary, error) {
	var s entity.Summary
	var err error
	if s.TotalMembers, err = u.members.Count(ctx, "", ""); err != nil {
		return s, err
	}
	if s.LifetimeMembers, err = u.members.Count(ctx, "", entity.TypeLifetime); err != nil {
		return s, err
	}
	if s.OneTimeMembers, err = u.members.Count(ctx, "", entity.TypeOneTime); err != nil {
		return s, err
	}
	if s.PendingMembershipRequests, err = u.members.Count(ctx, entity.StatusPending, ""); err != nil {
		return s, err
	}
	if s.PendingPaymentRequests, err = u.payments.CountPending(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// csvHeader is the column set of the member export.
var csvHeader = []string{
	"memberId", "fullName", "fatherName", "mobile", "email",
	"membershipType", "membershipFee", "status", "createdAt",
}

// ExportCSV renders every member record as CSV, newest first.
func (u *memberUsecase) ExportCSV(ctx context.Context) ([]byte, error) {
	members, err := u.members.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, m := range members {
		record := []string{
			m.MemberID,
			m.FullName,
			m.FatherName,
			m.Mobile,
			m.Email,
			m.MembershipType,
			strconv.FormatFloat(m.MembershipFee, 'f', -1, 64),
			m.Status,
			m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newMember builds the member record for a validated application payload.
func newMember(memberID string, in ApplyInput, email string, selection plansentity.Selection) *entity.Member {
	return &entity.Member{
		MemberID:           memberID,
		FullName:           strings.TrimSpace(in.FullName),
		FatherName:         strings.TrimSpace(in.FatherName),
		Mobile:             strings.TrimSpace(in.Mobile),
		Email:              email,
		Address:            strings.TrimSpace(in.Address),
		Occupation:         strings.TrimSpace(in.Occupation),
		AnnualIncome:       in.AnnualIncome,
		MembershipType:     entity.TypeOneTime,
		MembershipPlanID:   selection.PlanID,
		MembershipPlanName: selection.PlanName,
		MembershipFee:      selection.Fee,
		ProfileImage:       in.ProfileImage,
	}
}

// newMemberAccount builds the paired account for a member record, hashing
// the password before it ever reaches a repository.
func newMemberAccount(member *entity.Member, password string) (*authentity.Account, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &authentity.Account{
		Name:             member.FullName,
		Email:            member.Email,
		Phone:            member.Mobile,
		Password:         string(hashed),
		Address:          member.Address,
		MembershipType:   accountType(member.MembershipType),
		MembershipStatus: member.Status,
		Role:             authentity.RoleMember,
	}, nil
}

// accountProfile maps the mirrored member fields onto the account's shape.
func accountProfile(m *entity.Member) authentity.Profile {
	return authentity.Profile{
		Name:             m.FullName,
		Phone:            m.Mobile,
		Address:          m.Address,
		MembershipType:   accountType(m.MembershipType),
		MembershipStatus: m.Status,
	}
}

// accountType converts the member-record type spelling to the account
// table's legacy spelling.
func accountType(membershipType string) string {
	if membershipType == entity.TypeOneTime {
		return entity.TypeOneTimeLegacy
	}
	return membershipType
}

func normalizeFilter(f *ListFilter) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
