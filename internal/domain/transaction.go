package domain

// UnknownCategory marks a record whose category still has to be labeled.
const UnknownCategory = "UNKNOWN"

// Record is one normalized transaction as persisted in a record file.
// Field order here is the field order on disk.
type Record struct {
	Amount      float64 `json:"amount"`                // signed, as given by the source (negative = expense)
	Description string  `json:"description,omitempty"` // free text, optional
	Date        string  `json:"date"`                  // YYYY-MM-DD
	Category    string  `json:"category"`              // category name or UnknownCategory
	IsProcessed bool    `json:"isProcessed,omitempty"` // true once submitted to the ledger
}

// IsPending reports whether the record still has to be submitted.
func (r Record) IsPending() bool {
	return !r.IsProcessed
}

// IsUnknown reports whether the record still needs a category.
func (r Record) IsUnknown() bool {
	return r.Category == UnknownCategory
}

// Collection is the ordered set of records stored in one file.
type Collection []Record

// PendingIndexes returns the positions of all records not yet submitted,
// in collection order.
func (c Collection) PendingIndexes() []int {
	var idx []int
	for i, r := range c {
		if r.IsPending() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
