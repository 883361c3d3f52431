// Command engine replays a CSV of client transactions and prints the final
// account balances as CSV.
//
//	engine transactions.csv > accounts.csv
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/docopt/docopt-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/payments-engine/internal/config"
	"github.com/sheikh-saqib/payments-engine/internal/csvio"
	"github.com/sheikh-saqib/payments-engine/internal/events/kafka"
	"github.com/sheikh-saqib/payments-engine/internal/export"
	"github.com/sheikh-saqib/payments-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-engine/internal/logging"
	"github.com/sheikh-saqib/payments-engine/internal/storage/postgres"
)

const version = "0.1.0"

const usage = `engine

Usage:
  engine [-o <file>] [--log-level=<level>] <transactions>
  engine -h | --help
  engine --version

Options:
  -o <file>             Write the accounts CSV to <file> instead of stdout.
  --log-level=<level>   Override ENGINE_LOG_LEVEL (debug, info, warn, error).
  -h --help             Show this screen.
  --version             Show version.
`

type options struct {
	Input    string
	Output   string
	LogLevel string
}

func main() {
	parser := &docopt.Parser{HelpHandler: docopt.PrintHelpAndExit}
	args, err := parser.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	opts := optionsFrom(args)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "engine: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func optionsFrom(args docopt.Opts) options {
	str := func(key string) string {
		s, _ := args[key].(string)
		return s
	}
	return options{
		Input:    str("<transactions>"),
		Output:   str("-o"),
		LogLevel: str("--log-level"),
	}
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	records, err := csvio.ReadFile(opts.Input)
	if err != nil {
		logger.Error("input rejected", zap.String("file", opts.Input), zap.Error(err))
		return err
	}

	l := ledger.NewLedger(logger)
	l.Ingest(records)
	snapshot := l.Snapshot()

	if opts.Output != "" {
		err = csvio.WriteFile(opts.Output, snapshot)
	} else {
		err = csvio.Encode(stdout, snapshot)
	}
	if err != nil {
		return errors.Wrap(err, "write accounts")
	}

	exporter, closeSinks, err := newExporter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSinks()
	if !exporter.Enabled() {
		return nil
	}

	exportCtx, cancel := context.WithTimeout(ctx, cfg.ExportTimeout)
	defer cancel()
	runID, err := exporter.Export(exportCtx, snapshot)
	if err != nil {
		logger.Error("export failed", zap.String("run_id", runID), zap.Error(err))
		return err
	}
	return nil
}

// newExporter wires the sinks named in cfg. The returned func closes them.
func newExporter(ctx context.Context, cfg config.Config, logger *zap.Logger) (*export.Exporter, func(), error) {
	exporter := &export.Exporter{Topic: cfg.KafkaTopic, Logger: logger}
	var closers []func() error

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("closing sink", zap.Error(err))
			}
		}
	}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, closeAll, err
		}
		exporter.Store = store
		closers = append(closers, store.Close)
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers)
		exporter.Publisher = publisher
		closers = append(closers, publisher.Close)
	}

	return exporter, closeAll, nil
}
