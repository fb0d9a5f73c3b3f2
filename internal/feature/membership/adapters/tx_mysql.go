package adapters

import (
	"context"

	"gorm.io/gorm"

	authadapters "membership_backend/internal/feature/auth/adapters"
	"membership_backend/internal/feature/membership/usecase"
)

// txRunner runs paired member/account writes inside one gorm transaction.
type txRunner struct {
	db *gorm.DB
}

// Compile-time check that txRunner implements TxRunner.
var _ usecase.TxRunner = (*txRunner)(nil)

// NewTxRunner creates a new instance of txRunner with the given gorm.DB
// connection. Constructor for dependency injection.
func NewTxRunner(db *gorm.DB) *txRunner {
	return &txRunner{db: db}
}

// WithinTx opens a transaction and hands fn repositories bound to it.
// Any error from fn rolls back every write made through them.
func (r *txRunner) WithinTx(ctx context.Context, fn func(members usecase.MemberRepository, accounts usecase.AccountRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewMemberMySQL(tx), authadapters.NewAccountMySQL(tx))
	})
}
