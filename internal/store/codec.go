package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dvloznov/moneylover-importer/internal/domain"
)

const indent = "    "

// wireRecord mirrors domain.Record with pointers so missing fields can be told
// apart from zero values.
type wireRecord struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Category    *string  `json:"category"`
	IsProcessed *bool    `json:"isProcessed"`
}

// Encode serializes c as an indented JSON array with a trailing newline.
// An empty or nil collection encodes as [].
func Encode(c domain.Collection) ([]byte, error) {
	if c == nil {
		c = domain.Collection{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a serialized record array. Unknown fields, trailing data and
// records missing amount, date or category are rejected with ErrMalformed.
func Decode(data []byte) (domain.Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var raw []wireRecord
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after array", ErrMalformed)
	}

	out := make(domain.Collection, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.Amount == nil:
			return nil, fmt.Errorf("%w: record %d: missing amount", ErrMalformed, i)
		case r.Date == nil:
			return nil, fmt.Errorf("%w: record %d: missing date", ErrMalformed, i)
		case r.Category == nil:
			return nil, fmt.Errorf("%w: record %d: missing category", ErrMalformed, i)
		}

		rec := domain.Record{
			Amount:   *r.Amount,
			Date:     *r.Date,
			Category: *r.Category,
		}
		if r.Description != nil {
			rec.Description = *r.Description
		}
		if r.IsProcessed != nil {
			rec.IsProcessed = *r.IsProcessed
		}
		out = append(out, rec)
	}

	return out, nil
}
