package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cowandilla/clccal/internal/scheduler"
	"github.com/cowandilla/clccal/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API and the scheduled ICS export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			if listen == "" {
				listen = cfg.Listen
			}
			log := app.logger()

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched, err := newExportScheduler(app)
			if err != nil {
				return err
			}
			schedDone := make(chan struct{})
			if sched != nil {
				go func() {
					defer close(schedDone)
					sched.Start(ctx)
				}()
			} else {
				close(schedDone)
				log.Info("scheduled export disabled", "reason", "export.path or export.cron not set")
			}

			srv := web.NewServer(web.Deps{
				Calendar:         app.Calendar,
				Events:           app.Events,
				Governance:       app.Governance,
				Transitions:      app.Transitions,
				IsAdmin:          cfg.IsAdmin,
				ExportWeeksBack:  cfg.Export.WeeksBack,
				ExportWeeksAhead: cfg.Export.WeeksAhead,
				Logger:           log,
				Now:              app.Now,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (Ctrl+C to stop)\n", listen)
			err = srv.Start(ctx, listen)
			stop()
			<-schedDone
			return err
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from config)")
	return cmd
}

// newExportScheduler builds the snapshot scheduler, or returns nil when
// the export is not configured.
func newExportScheduler(app *App) (*scheduler.Scheduler, error) {
	cfg := app.config()
	if cfg.Export.Path == "" || cfg.Export.Cron == "" {
		return nil, nil
	}
	exporter := &scheduler.Exporter{
		Source:     app.Calendar,
		Path:       cfg.Export.Path,
		WeeksBack:  cfg.Export.WeeksBack,
		WeeksAhead: cfg.Export.WeeksAhead,
		Now:        app.Now,
		Logger:     app.logger(),
	}
	// The feed is written once at startup, then on every tick.
	if _, err := exporter.Run(context.Background()); err != nil {
		app.logger().Warn("initial ics snapshot failed", "error", err)
	}
	return scheduler.New(cfg.Export.Cron, exporter, app.logger())
}
