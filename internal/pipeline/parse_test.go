package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/extract"
	"github.com/dvloznov/moneylover-importer/internal/gcs"
	"github.com/dvloznov/moneylover-importer/internal/pipeline"
	"github.com/dvloznov/moneylover-importer/internal/store"
)

func TestParseSpreadsheet(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	csv := "Date,Amount,Description\n05-03-2024,-3.20,Coffee\n06-03-2024,10,Refund\n"
	if err := mem.Write(ctx, "wise.csv", []byte(csv)); err != nil {
		t.Fatal(err)
	}
	s := store.New(mem)

	records, err := pipeline.ParseSpreadsheet(ctx, mem, s, "wise.csv", recordsPath, "wise")
	if err != nil {
		t.Fatalf("ParseSpreadsheet failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	want := domain.Collection{
		{Amount: -3.2, Description: "Coffee", Date: "2024-03-05", Category: domain.UnknownCategory},
		{Amount: 10, Description: "Refund", Date: "2024-03-06", Category: domain.UnknownCategory},
	}
	got := mustLoad(t, s, recordsPath)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseSpreadsheet_Errors(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Write(ctx, "bank.csv", []byte("valuedate,amount\n20240101,\n")); err != nil {
		t.Fatal(err)
	}
	s := store.New(mem)

	tests := []struct {
		name    string
		input   string
		format  string
		wantErr error
	}{
		{"unknown format", "bank.csv", "revolut", extract.ErrUnknownFormat},
		{"missing input", "nope.csv", "bank", store.ErrNotFound},
		{"missing column value", "bank.csv", "", extract.ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.ParseSpreadsheet(ctx, mem, s, tt.input, recordsPath, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if _, err := s.Load(ctx, recordsPath); !errors.Is(err, store.ErrNotFound) {
				t.Error("no record file should be written on failure")
			}
		})
	}
}

// objectService is an in-memory gcs.ObjectService.
type objectService struct {
	objects map[string][]byte
}

func (o *objectService) ReadObject(ctx context.Context, uri string) ([]byte, error) {
	data, ok := o.objects[uri]
	if !ok {
		return nil, gcs.ErrObjectNotFound
	}
	return data, nil
}

func (o *objectService) WriteObject(ctx context.Context, uri string, data []byte) error {
	o.objects[uri] = data
	return nil
}

func TestParseSpreadsheet_ObjectStorage(t *testing.T) {
	ctx := context.Background()
	svc := &objectService{objects: map[string][]byte{
		"gs://exports/2024/03/wise.CSV": []byte("Date,Amount,Description\n05-03-2024,-3.20,Coffee\n"),
	}}
	router := &store.Router{Local: store.NewMemory(), Remote: store.NewObject(svc)}
	s := store.New(router)

	records, err := pipeline.ParseSpreadsheet(ctx, router, s, "gs://exports/2024/03/wise.CSV", "gs://exports/records.json", "wise")
	if err != nil {
		t.Fatalf("ParseSpreadsheet failed: %v", err)
	}
	if len(records) != 1 || records[0].Date != "2024-03-05" {
		t.Errorf("unexpected records: %+v", records)
	}
	if _, ok := svc.objects["gs://exports/records.json"]; !ok {
		t.Error("record file was not written to object storage")
	}
}
