package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cowandilla/clccal/internal/cli/formatter"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

// resolveEventID maps a full ID or unique ID prefix onto an event ID.
// Governance IDs are passed through so the service can refuse them.
func resolveEventID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("event ID is required")
	}
	if strings.HasPrefix(input, domain.GovernanceIDPrefix) {
		return input, nil
	}

	records, err := app.Events.List(ctx, nil, nil)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return matchID("event", ids, input)
}

func matchID(kind string, ids []string, input string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Add, change and remove calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventUpdateCmd(app),
		newEventListCmd(app),
		newEventShowCmd(app),
		newEventDeleteCmd(app),
	)

	return cmd
}

// eventFlags binds the event fields onto a flag set.
func eventFlags(fs *pflag.FlagSet, in *service.EventInput) {
	fs.StringVar(&in.Title, "title", "", "Event title")
	fs.StringVar(&in.Category, "category", "", "Category (see 'clccal legend', default Other)")
	fs.StringVar(&in.Date, "date", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&in.EndDate, "end-date", "", "Last day for multi-day events (YYYY-MM-DD)")
	fs.StringVar(&in.StartTime, "start", "", "Start time, e.g. 9:00 AM")
	fs.StringVar(&in.EndTime, "end", "", "End time")
	fs.StringVar(&in.Location, "location", "", "Location")
	fs.StringVar(&in.Notes, "notes", "", "Notes")
	fs.StringVar(&in.AddedBy, "added-by", "", "Who is adding the event (default $USER)")
	fs.StringVar(&in.Program, "program", "", "Student program, e.g. Tier 1")
	fs.StringVar(&in.StudentInitials, "student", "", "Student initials for student events")
}

func newEventAddCmd(app *App) *cobra.Command {
	var in service.EventInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.AddedBy == "" {
				in.AddedBy = os.Getenv("USER")
			}
			if (in.Title == "" || in.Date == "") && app.interactive() {
				if err := eventForm(&in).Run(); err != nil {
					return err
				}
			}

			rec, err := app.Events.Create(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s\n%s\n", rec.ID, formatter.FormatEventDetail(*rec))
			return nil
		},
	}

	eventFlags(cmd.Flags(), &in)
	return cmd
}

func newEventUpdateCmd(app *App) *cobra.Command {
	var in service.EventInput

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change an event; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if strings.HasPrefix(id, domain.GovernanceIDPrefix) {
				return fmt.Errorf("event %s: %w", id, service.ErrReadOnly)
			}
			current, err := app.Events.Get(ctx, id)
			if err != nil {
				return err
			}

			merged := inputFromRecord(*current)
			overlayChanged(cmd.Flags(), &merged, in)

			rec, err := app.Events.Update(ctx, id, merged)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %s\n%s\n", rec.ID, formatter.FormatEventDetail(*rec))
			return nil
		},
	}

	eventFlags(cmd.Flags(), &in)
	return cmd
}

// inputFromRecord converts a stored record back into write-path input.
func inputFromRecord(rec domain.EventRecord) service.EventInput {
	in := service.EventInput{
		Title:           rec.Title,
		Category:        string(rec.Category),
		Date:            rec.RawDate,
		StartTime:       rec.StartTime,
		EndTime:         rec.EndTime,
		Location:        rec.Location,
		Notes:           rec.Notes,
		AddedBy:         rec.AddedBy,
		Program:         string(rec.Program),
		StudentInitials: rec.StudentInitials,
	}
	if !rec.IsUndated() {
		in.Date = domain.DateKey(rec.StartDate)
	}
	if rec.EndDate != nil {
		in.EndDate = domain.DateKey(*rec.EndDate)
	}
	return in
}

// overlayChanged copies the explicitly set flags from src onto dst.
func overlayChanged(fs *pflag.FlagSet, dst *service.EventInput, src service.EventInput) {
	fields := map[string]struct {
		dst *string
		src string
	}{
		"title":    {&dst.Title, src.Title},
		"category": {&dst.Category, src.Category},
		"date":     {&dst.Date, src.Date},
		"end-date": {&dst.EndDate, src.EndDate},
		"start":    {&dst.StartTime, src.StartTime},
		"end":      {&dst.EndTime, src.EndTime},
		"location": {&dst.Location, src.Location},
		"notes":    {&dst.Notes, src.Notes},
		"added-by": {&dst.AddedBy, src.AddedBy},
		"program":  {&dst.Program, src.Program},
		"student":  {&dst.StudentInitials, src.StudentInitials},
	}
	for name, f := range fields {
		if fs.Changed(name) {
			*f.dst = f.src
		}
	}
}

func newEventListCmd(app *App) *cobra.Command {
	var from, to *time.Time

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Events.List(cmdContext(cmd), from, to)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(records))
			return nil
		},
	}

	dateFlag(cmd.Flags(), &from, "from", "Earliest start date (YYYY-MM-DD)")
	dateFlag(cmd.Flags(), &to, "to", "Latest start date (YYYY-MM-DD)")
	return cmd
}

func newEventShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			rec, err := app.Events.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEventDetail(*rec))
			return nil
		},
	}
}

func newEventDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Events.Delete(ctx, localActor(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s\n", id)
			return nil
		},
	}
}
