package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/moneylover-importer/internal/config"
	"github.com/dvloznov/moneylover-importer/internal/gcs"
	"github.com/dvloznov/moneylover-importer/internal/logger"
	"github.com/dvloznov/moneylover-importer/internal/moneylover"
	"github.com/dvloznov/moneylover-importer/internal/store"
)

// command runs one subcommand. Errors are returned, never exited on, so
// the resources held by the app are always released.
type command func(ctx context.Context, a *cliApp, args []string) error

// cliApp bundles what every command needs.
type cliApp struct {
	cfg     *config.Config
	log     zerolog.Logger
	files   *store.Router
	records *store.Records
	closers []func() error
}

func newApp(cfg *config.Config, log zerolog.Logger) *cliApp {
	router := &store.Router{Local: store.Local{}}
	return &cliApp{
		cfg:     cfg,
		log:     log,
		files:   router,
		records: store.New(router),
	}
}

// newLogger builds the process logger; every line carries the command and a run id.
func newLogger(cfg *config.Config, name string) zerolog.Logger {
	base := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return logger.WithFields(base, map[string]interface{}{
		"command": name,
		"run_id":  uuid.NewString(),
	})
}

// run validates the configuration and executes cmd. The signal context is
// cancelled and the app closed before it returns.
func run(cfg *config.Config, log zerolog.Logger, cmd command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a := newApp(cfg, log)
	defer a.Close()

	return cmd(ctx, a, args)
}

// openObjectStorage connects to GCS when any of paths is a gs:// URI.
func (a *cliApp) openObjectStorage(ctx context.Context, paths ...string) error {
	if a.files.Remote != nil || !needsObjectStorage(paths) {
		return nil
	}
	client, err := gcs.NewClient(ctx, a.cfg.GoogleCredentialsFile)
	if err != nil {
		return err
	}
	a.files.Remote = store.NewObject(client)
	a.closers = append(a.closers, client.Close)
	return nil
}

// Close releases everything opened by the commands.
func (a *cliApp) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn().Err(err).Msg("Failed to release resource")
		}
	}
	a.closers = nil
}

// ledger creates the MoneyLover client once the token is known to be set.
func (a *cliApp) ledger() (*moneylover.Client, error) {
	if err := a.cfg.ValidateRemote(); err != nil {
		return nil, err
	}
	return moneylover.NewClient(a.cfg.AccessToken, moneylover.Options{
		BaseURL: a.cfg.BaseURL,
		Timeout: a.cfg.HTTPTimeout,
	}), nil
}

// walletName prefers the flag over the configured default.
func (a *cliApp) walletName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.cfg.WalletName
}

func needsObjectStorage(paths []string) bool {
	for _, p := range paths {
		if gcs.IsURI(p) {
			return true
		}
	}
	return false
}
