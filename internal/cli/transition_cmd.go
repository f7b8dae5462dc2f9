package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cowandilla/clccal/internal/cli/formatter"
	"github.com/cowandilla/clccal/internal/importer"
	"github.com/cowandilla/clccal/internal/service"
)

func newTransitionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transition",
		Short: "Manage students' transition weeks",
	}

	cmd.AddCommand(
		newTransitionAddCmd(app),
		newTransitionDeleteCmd(app),
	)

	return cmd
}

func newTransitionAddCmd(app *App) *cobra.Command {
	var in service.TransitionInput
	var days [5]string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one week of a student's off-site schedule",
		Long: `Each weekday flag takes the off-site hours as START-END; omit the
flag for a day spent on-site. For example:

  clccal transition add --student J.S. --program "Tier 2" --term 1 \
    --week 2026-03-02 --mon 9:00-12:00 --thu "1:00 PM-3:00 PM"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, raw := range days {
				hours, err := parseHours(raw)
				if err != nil {
					return fmt.Errorf("--%s: %w", importer.DayKeys[i], err)
				}
				in.Days[i] = hours
			}

			ctx := cmdContext(cmd)
			week, err := app.Transitions.Add(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added week %s for %s\n", week.ID, week.StudentInitials)

			view, err := app.Calendar.Transitions(ctx, week.StudentInitials)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTransitions(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.StudentInitials, "student", "", "Student initials")
	cmd.Flags().StringVar(&in.Program, "program", "", "Student program, e.g. Tier 2")
	cmd.Flags().IntVar(&in.Term, "term", 1, "School term (1-4)")
	cmd.Flags().StringVar(&in.WeekStart, "week", "", "Monday of the week (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.WeekLabel, "label", "", "Week label, e.g. \"Term 1 Week 6\"")
	for i, key := range importer.DayKeys {
		cmd.Flags().StringVar(&days[i], key, "", "Off-site hours START-END")
	}
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("week")
	return cmd
}

// parseHours splits "START-END" into off-site hours. Empty means on-site.
func parseHours(raw string) (service.OffsiteInput, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return service.OffsiteInput{}, nil
	}
	raw = strings.ReplaceAll(raw, "–", "-")
	start, end, ok := strings.Cut(raw, "-")
	if !ok {
		return service.OffsiteInput{}, fmt.Errorf("want START-END, got %q", raw)
	}
	return service.OffsiteInput{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}, nil
}

func newTransitionDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a transition week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Transitions.Delete(cmdContext(cmd), localActor(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transition week %s\n", args[0])
			return nil
		},
	}
}
