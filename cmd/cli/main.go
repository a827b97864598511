package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dvloznov/moneylover-importer/internal/config"
	"github.com/dvloznov/moneylover-importer/internal/extract"
	"github.com/dvloznov/moneylover-importer/internal/pipeline"
	"github.com/dvloznov/moneylover-importer/internal/prompt"
	"github.com/dvloznov/moneylover-importer/internal/suggest"
)

var commands = map[string]command{
	"dump-categories": runDumpCategories,
	"parse":           runParse,
	"label":           runLabel,
	"rollup":          runRollup,
	"submit":          runSubmit,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	switch name {
	case "formats":
		runFormats()
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log := newLogger(cfg, name)

	if err := run(cfg, log, cmd, os.Args[2:]); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func printUsage() {
	fmt.Println("MoneyLover Importer CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  dump-categories  Write the category names of a wallet")
	fmt.Println("  parse            Turn a bank export spreadsheet into a record file")
	fmt.Println("  label            Ask for the category of every UNKNOWN record")
	fmt.Println("  rollup           Merge pending records with the same date and category")
	fmt.Println("  submit           Send pending records to MoneyLover")
	fmt.Println("  formats          List the supported spreadsheet formats")
	fmt.Println("  help             Show this help message")
	fmt.Println("\nPaths may be local files or gs://bucket/object URIs.")
	fmt.Println("Run 'cli <command> -h' for more information on a command.")
}

// parseFlags parses args; -h is not an error.
func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func runDumpCategories(ctx context.Context, a *cliApp, args []string) error {
	fs := flag.NewFlagSet("dump-categories", flag.ContinueOnError)
	output := fs.String("output", "", "File to write the category names to (stdout when empty)")
	wallet := fs.String("wallet", "", "Wallet name (defaults to MONEYLOVER_WALLET, then the first wallet)")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if err := a.openObjectStorage(ctx, *output); err != nil {
		return err
	}
	ledger, err := a.ledger()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	names, err := pipeline.DumpCategories(ctx, ledger, a.walletName(*wallet), &buf)
	if err != nil {
		return fmt.Errorf("failed to dump categories: %w", err)
	}

	if *output == "" {
		fmt.Println(buf.String())
		return nil
	}
	if err := a.files.Write(ctx, *output, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write categories to %s: %w", *output, err)
	}
	a.log.Info().Int("category_count", len(names)).Str("output", *output).Msg("Categories written")
	return nil
}

func runParse(ctx context.Context, a *cliApp, args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	input := fs.String("input", "", "Spreadsheet to read (.xlsx, .csv)")
	output := fs.String("output", "", "Record file to write")
	format := fs.String("format", extract.DefaultFormat, "Spreadsheet format: "+strings.Join(extract.Names(), ", "))
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if *input == "" || *output == "" {
		return errors.New("usage: cli parse -input PATH -output PATH [-format NAME]")
	}
	if err := a.openObjectStorage(ctx, *input, *output); err != nil {
		return err
	}

	records, err := pipeline.ParseSpreadsheet(ctx, a.files, a.records, *input, *output, *format)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	fmt.Printf("Wrote %d records to %s\n", len(records), *output)
	return nil
}

func runLabel(ctx context.Context, a *cliApp, args []string) error {
	fs := flag.NewFlagSet("label", flag.ContinueOnError)
	input := fs.String("input", "", "Record file to label")
	wallet := fs.String("wallet", "", "Wallet name (defaults to MONEYLOVER_WALLET, then the first wallet)")
	useSuggest := fs.Bool("suggest", false, "Preselect a category suggested by Gemini")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if *input == "" {
		return errors.New("usage: cli label -input PATH [-wallet NAME] [-suggest]")
	}
	if err := a.openObjectStorage(ctx, *input); err != nil {
		return err
	}
	ledger, err := a.ledger()
	if err != nil {
		return err
	}

	opts := pipeline.LabelOptions{WalletName: a.walletName(*wallet)}
	if *useSuggest {
		if err := a.cfg.ValidateSuggest(); err != nil {
			return err
		}
		sg, err := suggest.NewGemini(ctx, a.cfg.GeminiAPIKey, a.cfg.GeminiModel)
		if err != nil {
			return err
		}
		opts.Suggester = sg
	}

	res, err := pipeline.LabelUnknown(ctx, a.records, *input, ledger, prompt.NewSurvey(), opts)
	if err != nil {
		return fmt.Errorf("labeling stopped after %d of %d records: %w", res.Labeled, res.Unknown, err)
	}

	fmt.Printf("Labeled %d of %d records\n", res.Labeled, res.Unknown)
	return nil
}

func runRollup(ctx context.Context, a *cliApp, args []string) error {
	fs := flag.NewFlagSet("rollup", flag.ContinueOnError)
	input := fs.String("input", "", "Record file to roll up in place")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if *input == "" {
		return errors.New("usage: cli rollup -input PATH")
	}
	if err := a.openObjectStorage(ctx, *input); err != nil {
		return err
	}

	res, err := pipeline.RollupFile(ctx, a.records, *input)
	if err != nil {
		return fmt.Errorf("rollup failed: %w", err)
	}

	fmt.Printf("Rolled up %d records into %d\n", res.Before, res.After)
	return nil
}

func runSubmit(ctx context.Context, a *cliApp, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	input := fs.String("input", "", "Record file to submit")
	wallet := fs.String("wallet", "", "Wallet name (defaults to MONEYLOVER_WALLET, then the first wallet)")
	dryRun := fs.Bool("dry-run", false, "Show what would be submitted without sending or writing anything")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if *input == "" {
		return errors.New("usage: cli submit -input PATH [-wallet NAME] [-dry-run]")
	}
	if err := a.openObjectStorage(ctx, *input); err != nil {
		return err
	}
	ledger, err := a.ledger()
	if err != nil {
		return err
	}

	res, err := pipeline.Submit(ctx, a.records, *input, ledger, pipeline.SubmitOptions{
		WalletName: a.walletName(*wallet),
		DryRun:     *dryRun,
	})
	if err != nil {
		return fmt.Errorf("submission stopped after %d of %d pending records: %w", res.Submitted, res.Pending, err)
	}

	if *dryRun {
		fmt.Printf("Dry run: %d pending records would be submitted to %s\n", res.Pending, res.Wallet)
		return nil
	}
	fmt.Printf("Submitted %d of %d pending records\n", res.Submitted, res.Pending)
	return nil
}

func runFormats() {
	for _, name := range extract.Names() {
		fmt.Println(name)
	}
}
