package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/logger"
	"github.com/dvloznov/moneylover-importer/internal/store"
)

// RollupResult reports how many records a rollup started and ended with.
type RollupResult struct {
	Before int
	After  int
}

type rollupKey struct {
	date     string
	category string
}

// indexed is a record with the collection position it sorts by.
type indexed struct {
	rec   domain.Record
	index int
	sum   decimal.Decimal
}

// Rollup merges pending records sharing a date and category into one record
// per pair. The merged amount is the exact sum of the group; description,
// date and category come from the first record of the group. Processed
// records are kept as they are. Output order follows the last collection
// position of each output record.
func Rollup(c domain.Collection) domain.Collection {
	entries := make([]*indexed, 0, len(c))
	groups := make(map[rollupKey]*indexed)

	for i, r := range c {
		if r.IsProcessed {
			entries = append(entries, &indexed{rec: r, index: i})
			continue
		}

		key := rollupKey{date: r.Date, category: r.Category}
		g, ok := groups[key]
		if !ok {
			g = &indexed{rec: r, index: i, sum: decimal.NewFromFloat(r.Amount)}
			groups[key] = g
			entries = append(entries, g)
			continue
		}
		g.sum = g.sum.Add(decimal.NewFromFloat(r.Amount))
		g.index = i
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].index < entries[b].index
	})

	out := make(domain.Collection, 0, len(entries))
	for _, e := range entries {
		rec := e.rec
		if !rec.IsProcessed {
			rec.Amount = e.sum.InexactFloat64()
		}
		out = append(out, rec)
	}
	return out
}

// RollupFile rolls up the collection at path and replaces the file with the result.
func RollupFile(ctx context.Context, s store.Store, path string) (RollupResult, error) {
	c, err := s.Load(ctx, path)
	if err != nil {
		return RollupResult{}, fmt.Errorf("failed to load records: %w", err)
	}

	rolled := Rollup(c)
	if err := s.Save(ctx, path, rolled); err != nil {
		return RollupResult{}, fmt.Errorf("failed to save rolled up records: %w", err)
	}

	res := RollupResult{Before: len(c), After: len(rolled)}
	log := logger.FromContext(ctx)
	log.Info().
		Str("path", path).
		Int("before", res.Before).
		Int("after", res.After).
		Msg("Rolled up records")
	return res, nil
}
