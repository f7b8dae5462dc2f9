package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/cowandilla/clccal/internal/cli"
	"github.com/cowandilla/clccal/internal/config"
	"github.com/cowandilla/clccal/internal/db"
	"github.com/cowandilla/clccal/internal/repository"
	"github.com/cowandilla/clccal/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config: .env, ~/.clccal/config.yaml (or CLCCAL_CONFIG), then CLCCAL_* overrides.
	cfg, err := config.Resolve("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	eventRepo := repository.NewSQLiteEventRepo(database)
	governanceRepo := repository.NewSQLiteGovernanceRepo(database)
	transitionRepo := repository.NewSQLiteTransitionRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	store := service.NewRecordStore(eventRepo, governanceRepo, transitionRepo)
	app := &cli.App{
		Calendar: service.NewCalendarService(store, service.CalendarOptions{
			Logger:          logger,
			TimelinePadDays: cfg.TimelinePadDays,
			AgendaWeeks:     cfg.AgendaWeeks,
		}, observers...),
		Events:      service.NewEventService(eventRepo, observers...),
		Governance:  service.NewGovernanceService(governanceRepo, uow, observers...),
		Transitions: service.NewTransitionService(transitionRepo, observers...),
		Import:      service.NewImportService(uow, observers...),
		Config:      cfg,
		Logger:      logger,
	}

	// Detect interactive terminal for the browser and the add form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
