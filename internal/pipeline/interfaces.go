package pipeline

import (
	"context"

	"github.com/dvloznov/moneylover-importer/internal/domain"
)

// Ledger is the remote ledger the records are submitted to.
// This interface enables mocking and testing of ledger operations.
type Ledger interface {
	// ListWallets returns the wallets in the order the ledger lists them.
	ListWallets(ctx context.Context) ([]domain.Wallet, error)

	// ListCategories returns the categories of one wallet.
	ListCategories(ctx context.Context, walletID string) ([]domain.Category, error)

	// AddTransaction creates one transaction. Amount is a magnitude.
	AddTransaction(ctx context.Context, req domain.AddTransactionRequest) error
}

// Chooser asks a human to pick one of options.
type Chooser interface {
	Choose(ctx context.Context, message string, options []string, defaultOption string) (string, error)
}

// Suggester proposes a category for a record. An empty result means no
// suggestion.
type Suggester interface {
	Suggest(ctx context.Context, rec domain.Record, options []string) (string, error)
}
