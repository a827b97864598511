package pipeline_test

import (
	"context"
	"testing"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/pipeline"
)

func TestRollup(t *testing.T) {
	tests := []struct {
		name  string
		input domain.Collection
		want  domain.Collection
	}{
		{
			name: "same day same category",
			input: domain.Collection{
				{Amount: -10, Date: "2024-01-01", Category: "Food"},
				{Amount: -5, Date: "2024-01-01", Category: "Food"},
			},
			want: domain.Collection{
				{Amount: -15, Date: "2024-01-01", Category: "Food"},
			},
		},
		{
			name:  "empty",
			input: domain.Collection{},
			want:  domain.Collection{},
		},
		{
			name: "first record supplies description",
			input: domain.Collection{
				{Amount: -1.1, Description: "Bakery", Date: "2024-01-01", Category: "Food"},
				{Amount: -2.2, Description: "Market", Date: "2024-01-01", Category: "Food"},
			},
			want: domain.Collection{
				{Amount: -3.3, Description: "Bakery", Date: "2024-01-01", Category: "Food"},
			},
		},
		{
			name: "mixed signs net out",
			input: domain.Collection{
				{Amount: -30, Date: "2024-01-01", Category: "Food"},
				{Amount: 30, Date: "2024-01-01", Category: "Food"},
				{Amount: 5, Date: "2024-01-01", Category: "Food"},
			},
			want: domain.Collection{
				{Amount: 5, Date: "2024-01-01", Category: "Food"},
			},
		},
		{
			// Food on 2024-01-01 is fed by positions 0 and 3, so it lands after position 2.
			name: "processed records untouched and ordered by last contributor",
			input: domain.Collection{
				{Amount: -1, Date: "2024-01-01", Category: "Food"},
				{Amount: -100, Date: "2024-01-01", Category: "Food", IsProcessed: true},
				{Amount: -2, Date: "2024-01-02", Category: "Food"},
				{Amount: -3, Date: "2024-01-01", Category: "Food"},
				{Amount: -4, Date: "2024-01-01", Category: "Bills"},
				{Amount: -200, Date: "2024-01-02", Category: "Bills", IsProcessed: true},
			},
			want: domain.Collection{
				{Amount: -100, Date: "2024-01-01", Category: "Food", IsProcessed: true},
				{Amount: -2, Date: "2024-01-02", Category: "Food"},
				{Amount: -4, Date: "2024-01-01", Category: "Food"},
				{Amount: -4, Date: "2024-01-01", Category: "Bills"},
				{Amount: -200, Date: "2024-01-02", Category: "Bills", IsProcessed: true},
			},
		},
		{
			name: "processed records never merge",
			input: domain.Collection{
				{Amount: -1, Date: "2024-01-01", Category: "Food", IsProcessed: true},
				{Amount: -1, Date: "2024-01-01", Category: "Food", IsProcessed: true},
			},
			want: domain.Collection{
				{Amount: -1, Date: "2024-01-01", Category: "Food", IsProcessed: true},
				{Amount: -1, Date: "2024-01-01", Category: "Food", IsProcessed: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pipeline.Rollup(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Rollup() returned %d records, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("record %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRollup_Conservation(t *testing.T) {
	input := domain.Collection{
		{Amount: -3, Date: "2024-02-01", Category: "Food"},
		{Amount: -7, Date: "2024-02-01", Category: "Bills"},
		{Amount: 12, Date: "2024-02-02", Category: "Food"},
		{Amount: -8, Date: "2024-02-01", Category: "Food"},
		{Amount: -9, Date: "2024-02-01", Category: "Bills", IsProcessed: true},
		{Amount: 1, Date: "2024-02-02", Category: "Food"},
	}

	var wantPending, gotPending float64
	for _, r := range input {
		if !r.IsProcessed {
			wantPending += r.Amount
		}
	}
	out := pipeline.Rollup(input)
	for _, r := range out {
		if !r.IsProcessed {
			gotPending += r.Amount
		}
	}
	if gotPending != wantPending {
		t.Errorf("pending sum = %v, want %v", gotPending, wantPending)
	}

	seen := map[[2]string]bool{}
	for _, r := range out {
		if r.IsProcessed {
			continue
		}
		key := [2]string{r.Date, r.Category}
		if seen[key] {
			t.Errorf("group %v appears twice", key)
		}
		seen[key] = true
	}
}

func TestRollup_DoesNotModifyInput(t *testing.T) {
	input := domain.Collection{
		{Amount: -10, Date: "2024-01-01", Category: "Food"},
		{Amount: -5, Date: "2024-01-01", Category: "Food"},
	}
	pipeline.Rollup(input)
	if input[0].Amount != -10 || input[1].Amount != -5 {
		t.Errorf("input modified: %+v", input)
	}
}

func TestRollupFile(t *testing.T) {
	ctx := context.Background()
	s, _ := seed(t, recordsPath, domain.Collection{
		{Amount: -10, Date: "2024-01-01", Category: "Food"},
		{Amount: -5, Date: "2024-01-01", Category: "Food"},
		{Amount: -1, Date: "2024-01-02", Category: "Food", IsProcessed: true},
	})

	res, err := pipeline.RollupFile(ctx, s, recordsPath)
	if err != nil {
		t.Fatalf("RollupFile failed: %v", err)
	}
	if res.Before != 3 || res.After != 2 {
		t.Errorf("unexpected result: %+v", res)
	}

	got := mustLoad(t, s, recordsPath)
	if len(got) != 2 || got[0].Amount != -15 || !got[1].IsProcessed {
		t.Errorf("unexpected file contents: %+v", got)
	}
}
