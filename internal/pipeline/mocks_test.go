package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/store"
)

// MockLedger is a mock implementation of pipeline.Ledger for testing.
type MockLedger struct {
	ListWalletsFunc    func(ctx context.Context) ([]domain.Wallet, error)
	ListCategoriesFunc func(ctx context.Context, walletID string) ([]domain.Category, error)
	AddTransactionFunc func(ctx context.Context, req domain.AddTransactionRequest) error

	WalletCalls   int
	CategoryCalls int
	Added         []domain.AddTransactionRequest
}

func (m *MockLedger) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	m.WalletCalls++
	if m.ListWalletsFunc != nil {
		return m.ListWalletsFunc(ctx)
	}
	return []domain.Wallet{{ID: "w1", Name: "Cash"}, {ID: "w2", Name: "Bank"}}, nil
}

func (m *MockLedger) ListCategories(ctx context.Context, walletID string) ([]domain.Category, error) {
	m.CategoryCalls++
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx, walletID)
	}
	return []domain.Category{
		{ID: "c-food", Name: "Food"},
		{ID: "c-bills", Name: "Bills"},
		{ID: "c-salary", Name: "Salary"},
	}, nil
}

func (m *MockLedger) AddTransaction(ctx context.Context, req domain.AddTransactionRequest) error {
	if m.AddTransactionFunc != nil {
		if err := m.AddTransactionFunc(ctx, req); err != nil {
			return err
		}
	}
	m.Added = append(m.Added, req)
	return nil
}

// Calls counts every remote call made.
func (m *MockLedger) Calls() int {
	return m.WalletCalls + m.CategoryCalls + len(m.Added)
}

// MockChooser is a mock implementation of pipeline.Chooser for testing.
type MockChooser struct {
	ChooseFunc func(ctx context.Context, message string, options []string, defaultOption string) (string, error)

	Messages []string
	Defaults []string
}

func (m *MockChooser) Choose(ctx context.Context, message string, options []string, defaultOption string) (string, error) {
	m.Messages = append(m.Messages, message)
	m.Defaults = append(m.Defaults, defaultOption)
	if m.ChooseFunc != nil {
		return m.ChooseFunc(ctx, message, options, defaultOption)
	}
	return options[0], nil
}

// MockSuggester is a mock implementation of pipeline.Suggester for testing.
type MockSuggester struct {
	SuggestFunc func(ctx context.Context, rec domain.Record, options []string) (string, error)
}

func (m *MockSuggester) Suggest(ctx context.Context, rec domain.Record, options []string) (string, error) {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, rec, options)
	}
	return "", nil
}

// failingBackend wraps a memory backend and fails writes after a number of
// successful ones.
type failingBackend struct {
	*store.Memory
	allowed int
}

func (f *failingBackend) Write(ctx context.Context, path string, data []byte) error {
	if f.allowed <= 0 {
		return errors.New("disk full")
	}
	f.allowed--
	return f.Memory.Write(ctx, path, data)
}

// seed stores c at path in a fresh memory store.
func seed(t *testing.T, path string, c domain.Collection) (*store.Records, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	s := store.New(mem)
	if err := s.Save(context.Background(), path, c); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s, mem
}

func mustLoad(t *testing.T, s store.Store, path string) domain.Collection {
	t.Helper()
	c, err := s.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return c
}
