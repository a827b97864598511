package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/extract"
	"github.com/dvloznov/moneylover-importer/internal/gcs"
	"github.com/dvloznov/moneylover-importer/internal/logger"
	"github.com/dvloznov/moneylover-importer/internal/store"
)

// PipelineStep represents a single step in the parse pipeline.
type PipelineStep interface {
	Execute(ctx context.Context, state *ParseState) error
}

// ParseState holds the shared state across all parse steps.
type ParseState struct {
	InputPath  string
	OutputPath string
	Format     extract.Format

	Raw     []byte
	Rows    []extract.Row
	Records domain.Collection
}

// Step 1: ReadInputStep fetches the spreadsheet bytes from a local path or gs:// URI.
type ReadInputStep struct {
	Input store.Backend
}

func (s *ReadInputStep) Execute(ctx context.Context, state *ParseState) error {
	raw, err := s.Input.Read(ctx, state.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", state.InputPath, err)
	}
	state.Raw = raw
	return nil
}

// Step 2: ReadRowsStep reads the first worksheet into header-keyed rows.
type ReadRowsStep struct{}

func (s *ReadRowsStep) Execute(ctx context.Context, state *ParseState) error {
	name := sourceName(state.InputPath)
	rows, err := extract.ReadRows(bytes.NewReader(state.Raw), name)
	if err != nil {
		return fmt.Errorf("failed to read rows of %s: %w", name, err)
	}
	state.Rows = rows

	log := logger.FromContext(ctx)
	log.Debug().
		Str("file", name).
		Int("row_count", len(rows)).
		Msg("Read spreadsheet rows")
	return nil
}

// sourceName is the file name the spreadsheet reader is picked by.
func sourceName(p string) string {
	if gcs.IsURI(p) {
		return gcs.Filename(p)
	}
	return filepath.Base(p)
}

// Step 3: ExtractRecordsStep turns rows into records.
type ExtractRecordsStep struct{}

func (s *ExtractRecordsStep) Execute(ctx context.Context, state *ParseState) error {
	records, err := extract.Extract(state.Format, state.Rows)
	if err != nil {
		return fmt.Errorf("failed to extract records: %w", err)
	}
	state.Records = records
	return nil
}

// Step 4: SaveRecordsStep writes the collection to the output path.
type SaveRecordsStep struct {
	Store store.Store
}

func (s *SaveRecordsStep) Execute(ctx context.Context, state *ParseState) error {
	if err := s.Store.Save(ctx, state.OutputPath, state.Records); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Info().
		Str("output", state.OutputPath).
		Int("record_count", len(state.Records)).
		Msg("Saved records")
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []PipelineStep
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...PipelineStep) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially.
func (p *Pipeline) Execute(ctx context.Context, state *ParseState) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewParsePipeline creates the standard 4-step pipeline that turns a
// spreadsheet into a record file.
func NewParsePipeline(input store.Backend, output store.Store) *Pipeline {
	return NewPipeline(
		&ReadInputStep{Input: input},
		&ReadRowsStep{},
		&ExtractRecordsStep{},
		&SaveRecordsStep{Store: output},
	)
}
