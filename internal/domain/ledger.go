package domain

// Wallet is a ledger-owned wallet (account). Only id and name are kept.
type Wallet struct {
	ID   string
	Name string
}

// Category is a ledger-owned category scoped to one wallet.
type Category struct {
	ID   string
	Name string
}

// AddTransactionRequest is what gets sent to the ledger for one record.
// Amount is always a magnitude; the sign does not cross this boundary.
type AddTransactionRequest struct {
	CategoryID string
	AccountID  string
	Amount     float64
	Note       string
	Date       string // YYYY-MM-DD
}
