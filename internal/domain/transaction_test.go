package domain

import "testing"

func TestCollection_PendingIndexes(t *testing.T) {
	c := Collection{
		{Amount: -1, Date: "2024-01-01", Category: "Food", IsProcessed: true},
		{Amount: -2, Date: "2024-01-01", Category: "Food"},
		{Amount: -3, Date: "2024-01-02", Category: UnknownCategory},
		{Amount: -4, Date: "2024-01-02", Category: "Bills", IsProcessed: true},
	}

	got := c.PendingIndexes()
	want := []int{1, 2}
	if len(got) != len(want) {
		t.Fatalf("PendingIndexes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PendingIndexes()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if !c[2].IsUnknown() {
		t.Error("expected record 2 to be unknown")
	}
	if c[1].IsUnknown() {
		t.Error("expected record 1 to be categorized")
	}
}

func TestCollection_Clone(t *testing.T) {
	c := Collection{{Amount: -1, Date: "2024-01-01", Category: "Food"}}
	cp := c.Clone()
	cp[0].IsProcessed = true

	if c[0].IsProcessed {
		t.Error("Clone must not share the backing array")
	}
	if Collection(nil).Clone() != nil {
		t.Error("Clone of nil should stay nil")
	}
}
