// Package extract turns spreadsheet rows into records. Each supported export
// layout is a named Format; Lookup picks one by identifier.
package extract

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/moneylover-importer/internal/domain"
)

var (
	// ErrUnknownFormat is returned by Lookup for an unregistered identifier.
	ErrUnknownFormat = errors.New("unknown extraction format")

	// ErrMissingColumn is returned when a row lacks a column a format requires.
	ErrMissingColumn = errors.New("missing column")
)

// Row is one spreadsheet row keyed by header name.
type Row map[string]string

// Format converts rows of one export layout into record fields.
type Format interface {
	// Name is the identifier the format is selected by.
	Name() string
	// ParseDate returns the row date as YYYY-MM-DD.
	ParseDate(row Row) (string, error)
	// ParseAmount returns the signed amount.
	ParseAmount(row Row) (float64, error)
	// ParseDescription returns the description, or "" when there is none.
	ParseDescription(row Row) string
}

// CategoryParser is implemented by formats whose exports carry a category.
type CategoryParser interface {
	// ParseCategory returns the category and whether the row had one.
	ParseCategory(row Row) (string, bool)
}

// DefaultFormat is used when no format is selected.
const DefaultFormat = "bank"

var formats = map[string]Format{
	"bank":        bankFormat{},
	"wise":        wiseFormat{},
	"categorized": categorizedFormat{},
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered format identifiers in sorted order.
func Names() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtractRecord builds one record from row. Rows without a category get
// domain.UnknownCategory.
func ExtractRecord(f Format, row Row) (domain.Record, error) {
	amount, err := f.ParseAmount(row)
	if err != nil {
		return domain.Record{}, err
	}
	date, err := f.ParseDate(row)
	if err != nil {
		return domain.Record{}, err
	}

	rec := domain.Record{
		Amount:      amount,
		Description: f.ParseDescription(row),
		Date:        date,
		Category:    domain.UnknownCategory,
	}
	if cp, ok := f.(CategoryParser); ok {
		if category, found := cp.ParseCategory(row); found {
			rec.Category = category
		}
	}
	return rec, nil
}

// Extract maps every row to a record, in order. The first failing row aborts
// the whole extraction.
func Extract(f Format, rows []Row) (domain.Collection, error) {
	out := make(domain.Collection, 0, len(rows))
	for i, row := range rows {
		rec, err := ExtractRecord(f, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func requireColumn(row Row, column string) (string, error) {
	v, ok := row[column]
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w %q", ErrMissingColumn, column)
	}
	return strings.TrimSpace(v), nil
}

func parseAmountColumn(row Row, column string) (float64, error) {
	raw, err := requireColumn(row, column)
	if err != nil {
		return 0, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("column %q: invalid amount %q: %w", column, raw, err)
	}
	return d.InexactFloat64(), nil
}

// canonicalDate checks that year, month and day form a real calendar date and
// returns it as YYYY-MM-DD.
func canonicalDate(year, month, day string) (string, error) {
	s := year + "-" + month + "-" + day
	d, err := civil.ParseDate(s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d.String(), nil
}

func optionalColumn(row Row, column string) string {
	return strings.TrimSpace(row[column])
}
