package pipeline

import (
	"context"

	"github.com/dvloznov/moneylover-importer/internal/domain"
	"github.com/dvloznov/moneylover-importer/internal/extract"
	"github.com/dvloznov/moneylover-importer/internal/logger"
	"github.com/dvloznov/moneylover-importer/internal/store"
)

// ParseSpreadsheet reads the spreadsheet at inputPath with the named format
// and writes the records to outputPath, replacing any existing file. All
// records start unprocessed.
func ParseSpreadsheet(ctx context.Context, input store.Backend, output store.Store, inputPath, outputPath, formatName string) (domain.Collection, error) {
	if formatName == "" {
		formatName = extract.DefaultFormat
	}
	format, err := extract.Lookup(formatName)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("input", inputPath).
		Str("format", format.Name()).
		Msg("Parsing spreadsheet")

	state := &ParseState{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Format:     format,
	}
	if err := NewParsePipeline(input, output).Execute(ctx, state); err != nil {
		return nil, err
	}
	return state.Records, nil
}
