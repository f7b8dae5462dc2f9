package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cowandilla/clccal/internal/config"
	"github.com/cowandilla/clccal/internal/service"
)

// App holds the services and settings the commands run against.
type App struct {
	Calendar    service.CalendarService
	Events      service.EventService
	Governance  service.GovernanceService
	Transitions service.TransitionService
	Import      service.ImportService

	Config *config.Config
	Logger *slog.Logger

	// Now is the clock; nil means time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// browser only run when it returns true.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		return config.DefaultConfig()
	}
	return a.Config
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// localActor is the operator at the terminal. Anyone who can run the CLI
// can open the database directly, so the CLI acts with admin rights.
func localActor() service.Actor {
	return service.Actor{Name: "cli", Admin: true}
}

// NewRootCmd creates the top-level "clccal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "clccal",
		Short:         "School calendar: month, week, agenda, placements and transitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMonthCmd(app),
		newWeekCmd(app),
		newAgendaCmd(app),
		newTimelineCmd(app),
		newTransitionsCmd(app),
		newLegendCmd(),
		newEventCmd(app),
		newGovernanceCmd(app),
		newTransitionCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newBrowseCmd(app),
		newServeCmd(app),
	)

	return root
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
