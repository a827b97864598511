package pipeline

import "errors"

var (
	// ErrNoWallets is returned when the ledger lists no wallet at all.
	ErrNoWallets = errors.New("ledger has no wallets")

	// ErrWalletNotFound is returned when no wallet has the requested name.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrUnknownCategory is returned when a record's category has no
	// counterpart in the wallet.
	ErrUnknownCategory = errors.New("category not found in wallet")
)

// ErrNotPersisted is returned when the ledger accepted a transaction but the
// record file could not be updated. A rerun submits that record again.
var ErrNotPersisted = errors.New("transaction submitted but not persisted")
