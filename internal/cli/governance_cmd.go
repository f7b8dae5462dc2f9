package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cowandilla/clccal/internal/cli/formatter"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

func newGovernanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "governance",
		Aliases: []string{"pac"},
		Short:   "Manage PAC governance meetings",
	}

	cmd.AddCommand(
		newGovernanceAddCmd(app),
		newGovernanceListCmd(app),
		newGovernanceMaterializeCmd(app),
		newGovernanceDeleteCmd(app),
	)

	return cmd
}

func meetingFlags(fs *pflag.FlagSet, in *service.GovernanceInput) {
	fs.StringVar(&in.StartTime, "time", "", "Start time, e.g. 6:30 PM")
	fs.StringVar(&in.MeetingType, "type", "", "Meeting type (default PAC Meeting)")
	fs.StringVar(&in.Location, "location", "", "Location")
	fs.StringVar(&in.Chair, "chair", "", "Chair")
}

func newGovernanceAddCmd(app *App) *cobra.Command {
	var in service.GovernanceInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a single meeting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Governance.Add(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meeting %s\n%s\n", rec.ID, formatter.FormatEventDetail(*rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Date, "date", "", "Meeting date (YYYY-MM-DD)")
	meetingFlags(cmd.Flags(), &in)
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newGovernanceListCmd(app *App) *cobra.Command {
	var from, to *time.Time

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meetings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Governance.List(cmdContext(cmd), from, to)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meetings found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(records))
			return nil
		},
	}

	dateFlag(cmd.Flags(), &from, "from", "Earliest date (YYYY-MM-DD)")
	dateFlag(cmd.Flags(), &to, "to", "Latest date (YYYY-MM-DD)")
	return cmd
}

func newGovernanceMaterializeCmd(app *App) *cobra.Command {
	var (
		in      service.SeriesInput
		start   *time.Time
		until   *time.Time
		exdates []string
	)

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Store every occurrence of a recurring meeting",
		Long: `Expands an RRULE into one stored meeting per occurrence, e.g.

  clccal governance materialize --rule "FREQ=MONTHLY;BYDAY=1MO" \
    --start 2026-02-02 --until 2026-12-31 --time "6:30 PM"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == nil {
				return fmt.Errorf("--start is required")
			}
			in.Start = *start
			if until != nil {
				in.Until = *until
			}
			for _, raw := range exdates {
				d, err := time.Parse(domain.DateLayout, raw)
				if err != nil {
					return fmt.Errorf("invalid --exdate %q (want YYYY-MM-DD)", raw)
				}
				in.ExDates = append(in.ExDates, d)
			}

			res, err := app.Governance.Materialize(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stored %d meetings (series %s)\n", len(res.Occurrences), res.SeriesID)
			if res.Capped {
				fmt.Fprintln(out, formatter.StyleYellow.Render(
					fmt.Sprintf("Stopped at %d occurrences; narrow --until to store the rest.", service.MaxSeriesOccurrences)))
			}
			if len(res.Occurrences) > 0 {
				fmt.Fprint(out, formatter.FormatEventList(res.Occurrences))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Rule, "rule", "", "RRULE, e.g. FREQ=MONTHLY;BYDAY=1MO")
	dateFlag(cmd.Flags(), &start, "start", "First possible date (YYYY-MM-DD)")
	dateFlag(cmd.Flags(), &until, "until", "Last possible date (YYYY-MM-DD, default a year after start)")
	cmd.Flags().StringArrayVar(&exdates, "exdate", nil, "Skip this date (repeatable)")
	meetingFlags(cmd.Flags(), &in.Meeting)
	_ = cmd.MarkFlagRequired("rule")
	return cmd
}

func newGovernanceDeleteCmd(app *App) *cobra.Command {
	var series bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a meeting, or a whole series with --series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			if series {
				n, err := app.Governance.DeleteSeries(ctx, localActor(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d meetings\n", n)
				return nil
			}
			if err := app.Governance.Delete(ctx, localActor(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meeting %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&series, "series", false, "Treat ID as a series ID")
	return cmd
}
