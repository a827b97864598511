package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/logger"
)

// ResolveWallet returns the wallet named name, or the first listed wallet
// when name is empty.
func ResolveWallet(ctx context.Context, ledger Ledger, name string) (domain.Wallet, error) {
	wallets, err := ledger.ListWallets(ctx)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("failed to list wallets: %w", err)
	}
	if len(wallets) == 0 {
		return domain.Wallet{}, ErrNoWallets
	}
	if name == "" {
		return wallets[0], nil
	}
	for _, w := range wallets {
		if w.Name == name {
			return w, nil
		}
	}
	return domain.Wallet{}, fmt.Errorf("%w: %q", ErrWalletNotFound, name)
}

// ListCategoryNames returns the category names of the resolved wallet in the
// order the ledger lists them.
func ListCategoryNames(ctx context.Context, ledger Ledger, walletName string) ([]string, error) {
	wallet, err := ResolveWallet(ctx, ledger, walletName)
	if err != nil {
		return nil, err
	}

	categories, err := ledger.ListCategories(ctx, wallet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories of wallet %q: %w", wallet.Name, err)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	log := logger.FromContext(ctx)
	log.Debug().
		Str("wallet", wallet.Name).
		Int("category_count", len(names)).
		Msg("Listed categories")
	return names, nil
}

// DumpCategories writes the category names to w, one per line, and returns them.
func DumpCategories(ctx context.Context, ledger Ledger, walletName string, w io.Writer) ([]string, error) {
	names, err := ListCategoryNames(ctx, ledger, walletName)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, strings.Join(names, "\n")); err != nil {
		return nil, fmt.Errorf("failed to write categories: %w", err)
	}
	return names, nil
}

// categoryIDs maps names to ids. With duplicate names the first one listed wins.
func categoryIDs(categories []domain.Category) map[string]string {
	ids := make(map[string]string, len(categories))
	for _, c := range categories {
		if _, ok := ids[c.Name]; !ok {
			ids[c.Name] = c.ID
		}
	}
	return ids
}
