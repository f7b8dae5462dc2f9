package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cowandilla/clccal/internal/cli/formatter"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var from, to *time.Time
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the calendar as an iCalendar (.ics) file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			stamp := app.now()
			window := export.SnapshotWindow(stamp, cfg.Export.WeeksBack, cfg.Export.WeeksAhead)
			if from != nil {
				window.From = *from
			}
			if to != nil {
				window.To = *to
			}
			ctx := cmdContext(cmd)

			if out == "" || out == "-" {
				view, err := app.Calendar.Records(ctx, window)
				if err != nil {
					return err
				}
				_, _, err = export.Write(cmd.OutOrStdout(), view.Records, stamp)
				return err
			}

			res, err := export.Snapshot(ctx, app.Calendar, window, out, stamp)
			if err != nil {
				return err
			}
			w := cmd.ErrOrStderr()
			fmt.Fprintf(w, "Wrote %d events (%s to %s) to %s\n",
				res.Written, domain.DateKey(res.Window.From), domain.DateKey(res.Window.To), out)
			if res.Skipped > 0 {
				fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("Skipped %d undated records.", res.Skipped)))
			}
			fmt.Fprint(w, formatter.FormatWarnings(res.Warnings))
			return nil
		},
	}

	dateFlag(cmd.Flags(), &from, "from", "First day (YYYY-MM-DD)")
	dateFlag(cmd.Flags(), &to, "to", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
