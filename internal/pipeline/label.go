package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/logger"
	"github.com/dvloznov/moneylover-importer/internal/store"
)

// LabelOptions control a labeling run.
type LabelOptions struct {
	// WalletName selects the wallet whose categories are offered; empty
	// means the first listed one.
	WalletName string
	// Suggester, when set, preselects a proposed category in the prompt.
	Suggester Suggester
}

// LabelResult summarizes a labeling run.
type LabelResult struct {
	Unknown int
	Labeled int
}

// LabelUnknown asks the chooser for the category of every UNKNOWN record at
// path, in collection order. The collection is saved after every answer so
// an interrupted run keeps its progress. Categories are only fetched from the
// ledger when at least one record needs a label.
func LabelUnknown(ctx context.Context, s store.Store, path string, ledger Ledger, chooser Chooser, opts LabelOptions) (LabelResult, error) {
	log := logger.FromContext(ctx)

	c, err := s.Load(ctx, path)
	if err != nil {
		return LabelResult{}, fmt.Errorf("failed to load records: %w", err)
	}

	var unknown []int
	for i, r := range c {
		if r.IsUnknown() {
			unknown = append(unknown, i)
		}
	}
	res := LabelResult{Unknown: len(unknown)}
	if len(unknown) == 0 {
		log.Info().Str("path", path).Msg("No records need a category")
		return res, nil
	}

	names, err := ListCategoryNames(ctx, ledger, opts.WalletName)
	if err != nil {
		return res, err
	}
	if len(names) == 0 {
		return res, fmt.Errorf("wallet has no categories to choose from")
	}

	for n, i := range unknown {
		def := ""
		if opts.Suggester != nil {
			def = suggestCategory(ctx, opts.Suggester, c[i], names)
		}

		message := fmt.Sprintf("[%d/%d] %s", n+1, len(unknown), describe(c[i]))
		choice, err := chooser.Choose(ctx, message, names, def)
		if err != nil {
			return res, fmt.Errorf("failed to label record %d: %w", i+1, err)
		}

		c[i].Category = choice
		if err := s.Save(ctx, path, c); err != nil {
			return res, fmt.Errorf("failed to save label of record %d: %w", i+1, err)
		}
		res.Labeled++

		log.Debug().
			Int("index", i).
			Str("category", choice).
			Bool("suggested", def != "" && def == choice).
			Msg("Labeled record")
	}

	log.Info().Int("labeled", res.Labeled).Str("path", path).Msg("Labeling complete")
	return res, nil
}

// suggestCategory returns the suggester's pick when it names one of names.
// A failing suggester only costs the default.
func suggestCategory(ctx context.Context, sg Suggester, rec domain.Record, names []string) string {
	s, err := sg.Suggest(ctx, rec, names)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("Category suggestion failed")
		return ""
	}
	for _, name := range names {
		if name == s {
			return s
		}
	}
	return ""
}

func describe(r domain.Record) string {
	parts := []string{r.Date, strconv.FormatFloat(r.Amount, 'f', -1, 64)}
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	return strings.Join(parts, "  ")
}
