package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/logger"
	"github.com/dvloznov/moneylover-importer/internal/store"
)

// SubmitOptions control a submission run.
type SubmitOptions struct {
	// WalletName selects the target wallet; empty means the first listed one.
	WalletName string
	// DryRun maps every pending record but sends and writes nothing.
	DryRun bool
}

// SubmitResult summarizes a submission run.
type SubmitResult struct {
	Wallet    string
	Pending   int
	Submitted int
}

// submission is one pending record mapped to its ledger request.
type submission struct {
	index int
	req   domain.AddTransactionRequest
}

// Submit sends every pending record at path to the ledger, one at a time in
// collection order. After each accepted transaction the record is marked
// processed and the whole collection is saved, so a rerun only sends what is
// still pending. The run stops at the first failure.
func Submit(ctx context.Context, s store.Store, path string, ledger Ledger, opts SubmitOptions) (SubmitResult, error) {
	log := logger.FromContext(ctx)

	c, err := s.Load(ctx, path)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to load records: %w", err)
	}

	pending := c.PendingIndexes()
	res := SubmitResult{Pending: len(pending)}
	if len(pending) == 0 {
		log.Info().Str("path", path).Msg("No pending records to submit")
		return res, nil
	}

	wallet, err := ResolveWallet(ctx, ledger, opts.WalletName)
	if err != nil {
		return res, err
	}
	res.Wallet = wallet.Name

	categories, err := ledger.ListCategories(ctx, wallet.ID)
	if err != nil {
		return res, fmt.Errorf("failed to list categories of wallet %q: %w", wallet.Name, err)
	}

	plan, err := planSubmissions(c, pending, wallet, categoryIDs(categories))
	if err != nil {
		return res, err
	}

	log.Info().
		Str("path", path).
		Str("wallet", wallet.Name).
		Int("pending", len(plan)).
		Bool("dry_run", opts.DryRun).
		Msg("Starting submission")

	if opts.DryRun {
		for _, p := range plan {
			log.Info().
				Int("index", p.index).
				Str("date", p.req.Date).
				Float64("amount", p.req.Amount).
				Str("category", c[p.index].Category).
				Str("note", p.req.Note).
				Msg("[DRY RUN] Would submit transaction")
		}
		return res, nil
	}

	for _, p := range plan {
		if err := ledger.AddTransaction(ctx, p.req); err != nil {
			log.Error().
				Err(err).
				Int("index", p.index).
				Int("submitted", res.Submitted).
				Msg("Submission failed, stopping")
			return res, fmt.Errorf("failed to submit record %d: %w", p.index+1, err)
		}
		res.Submitted++

		c[p.index].IsProcessed = true
		if err := s.Save(ctx, path, c); err != nil {
			return res, fmt.Errorf("record %d: %w: %w", p.index+1, ErrNotPersisted, err)
		}

		log.Info().
			Int("index", p.index).
			Str("date", p.req.Date).
			Float64("amount", p.req.Amount).
			Msg("Submitted transaction")
	}

	log.Info().
		Int("submitted", res.Submitted).
		Str("wallet", wallet.Name).
		Msg("Submission complete")
	return res, nil
}

// planSubmissions maps every pending record to a request before anything is
// sent. One unresolvable category fails the whole batch.
func planSubmissions(c domain.Collection, pending []int, wallet domain.Wallet, ids map[string]string) ([]submission, error) {
	var missing []error
	plan := make([]submission, 0, len(pending))

	for _, i := range pending {
		r := c[i]
		id, ok := ids[r.Category]
		if !ok {
			missing = append(missing, fmt.Errorf("record %d (%s, %q): %w: %q", i+1, r.Date, r.Description, ErrUnknownCategory, r.Category))
			continue
		}
		plan = append(plan, submission{
			index: i,
			req: domain.AddTransactionRequest{
				CategoryID: id,
				AccountID:  wallet.ID,
				Amount:     math.Abs(r.Amount),
				Note:       r.Description,
				Date:       r.Date,
			},
		})
	}

	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}
	return plan, nil
}
