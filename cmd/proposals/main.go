package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/proposals/internal/cli"
	"github.com/alexanderramin/proposals/internal/config"
	"github.com/alexanderramin/proposals/internal/db"
	"github.com/alexanderramin/proposals/internal/logging"
	"github.com/alexanderramin/proposals/internal/metrics"
	"github.com/alexanderramin/proposals/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	m := metrics.New()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug().Str("db", cfg.DBPath).Msg("database ready")

	uow := db.NewSQLiteUnitOfWork(database)
	proposals := service.NewProposalService(uow,
		service.WithHistoryDocumentLimit(cfg.HistoryDocumentLimit),
		service.WithObservers(
			service.NewLogUseCaseObserver(logger, cfg.LogCalls),
			service.NewMetricsUseCaseObserver(m),
		),
	)

	app := &cli.App{
		Proposals: proposals,
		Metrics:   m,
		PageSize:  cfg.PageSize,
		Confirm:   cli.ConfirmPrompt,
	}

	// Prompts need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
