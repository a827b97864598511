package extract

import (
	"fmt"
	"strings"
)

// bankFormat reads the generic bank export: valuedate as YYYYMMDD.
type bankFormat struct{}

func (bankFormat) Name() string { return "bank" }

func (bankFormat) ParseDate(row Row) (string, error) {
	raw, err := requireColumn(row, "valuedate")
	if err != nil {
		return "", err
	}
	if len(raw) != 8 {
		return "", fmt.Errorf("column %q: want YYYYMMDD, got %q", "valuedate", raw)
	}
	return canonicalDate(raw[0:4], raw[4:6], raw[6:8])
}

func (bankFormat) ParseAmount(row Row) (float64, error) {
	return parseAmountColumn(row, "amount")
}

func (bankFormat) ParseDescription(row Row) string {
	return optionalColumn(row, "description")
}

// wiseFormat reads Wise statement exports: Date as DD-MM-YYYY.
type wiseFormat struct{}

func (wiseFormat) Name() string { return "wise" }

func (wiseFormat) ParseDate(row Row) (string, error) {
	raw, err := requireColumn(row, "Date")
	if err != nil {
		return "", err
	}
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("column %q: want DD-MM-YYYY, got %q", "Date", raw)
	}
	return canonicalDate(parts[2], parts[1], parts[0])
}

func (wiseFormat) ParseAmount(row Row) (float64, error) {
	return parseAmountColumn(row, "Amount")
}

func (wiseFormat) ParseDescription(row Row) string {
	return optionalColumn(row, "Description")
}

// categorizedFormat reads exports that already carry a category column,
// with ISO dates.
type categorizedFormat struct{}

func (categorizedFormat) Name() string { return "categorized" }

func (categorizedFormat) ParseDate(row Row) (string, error) {
	raw, err := requireColumn(row, "date")
	if err != nil {
		return "", err
	}
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("column %q: want YYYY-MM-DD, got %q", "date", raw)
	}
	return canonicalDate(parts[0], parts[1], parts[2])
}

func (categorizedFormat) ParseAmount(row Row) (float64, error) {
	return parseAmountColumn(row, "amount")
}

func (categorizedFormat) ParseDescription(row Row) string {
	return optionalColumn(row, "description")
}

func (categorizedFormat) ParseCategory(row Row) (string, bool) {
	category := optionalColumn(row, "category")
	return category, category != ""
}
