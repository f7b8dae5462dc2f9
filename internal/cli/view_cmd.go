package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/cli/formatter"
	"github.com/cowandilla/clccal/internal/service"
)

func newMonthCmd(app *App) *cobra.Command {
	var month calendar.YearMonth
	var selected *time.Time

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Calendar.Month(cmdContext(cmd), service.MonthRequest{Month: month, Selected: selected})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMonth(view))
			return nil
		},
	}

	monthFlag(cmd.Flags(), &month, "month", "Month to show (YYYY-MM, default current)")
	dateFlag(cmd.Flags(), &selected, "selected", "Day to highlight (YYYY-MM-DD)")
	return cmd
}

func newWeekCmd(app *App) *cobra.Command {
	var start, selected *time.Time

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the seven days of a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.WeekRequest{Selected: selected}
			if start != nil {
				req.Start = *start
			}
			view, err := app.Calendar.Week(cmdContext(cmd), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(view))
			return nil
		},
	}

	dateFlag(cmd.Flags(), &start, "start", "Any day in the week (YYYY-MM-DD, default today)")
	dateFlag(cmd.Flags(), &selected, "selected", "Day to highlight (YYYY-MM-DD)")
	return cmd
}

func newAgendaCmd(app *App) *cobra.Command {
	var from, to *time.Time
	var categories []string

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List upcoming events by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := parseCategories(categories)
			if err != nil {
				return err
			}
			view, err := app.Calendar.Agenda(cmdContext(cmd), service.AgendaRequest{From: from, To: to, Categories: cats})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAgenda(view))
			return nil
		},
	}

	dateFlag(cmd.Flags(), &from, "from", "First day (YYYY-MM-DD, default today)")
	dateFlag(cmd.Flags(), &to, "to", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&categories, "category", nil, "Only show this category (repeatable)")
	return cmd
}

func newTimelineCmd(app *App) *cobra.Command {
	var from, to *time.Time
	var programs []string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show student placements across school days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Calendar.Timeline(cmdContext(cmd), service.TimelineRequest{
				From:     from,
				To:       to,
				Programs: parsePrograms(programs),
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(view))
			return nil
		},
	}

	dateFlag(cmd.Flags(), &from, "from", "First day (YYYY-MM-DD, default this Monday)")
	dateFlag(cmd.Flags(), &to, "to", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&programs, "program", nil, "Only show this program (repeatable)")
	return cmd
}

func newTransitionsCmd(app *App) *cobra.Command {
	var student string

	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Show students' weekly off-site schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Calendar.Transitions(cmdContext(cmd), student)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTransitions(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "Student initials (default all students)")
	return cmd
}

func newLegendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "List event categories and their colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLegend())
			return nil
		},
	}
}
