package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/cli/formatter"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

func clccalHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// eventForm collects the fields of an event interactively. Values already
// in in are used as defaults.
func eventForm(in *service.EventInput) *huh.Form {
	if in.Category == "" {
		in.Category = string(domain.CategoryOther)
	}
	options := make([]huh.Option[string], 0, len(domain.Categories))
	for _, c := range domain.Categories {
		if c == domain.CategoryPACMeeting {
			continue
		}
		options = append(options, huh.NewOption(domain.CategoryAccent(c).Glyph+" "+string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&in.Title).Validate(validateRequired("title")),
			huh.NewSelect[string]().Title("Category").Options(options...).Value(&in.Category),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Placeholder("2026-03-02").Value(&in.Date).Validate(validateDate),
			huh.NewInput().Title("End date (blank for single day)").Value(&in.EndDate).Validate(validateOptionalDate),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start time (blank for all day)").Placeholder("9:00 AM").Value(&in.StartTime).Validate(validateOptionalClock),
			huh.NewInput().Title("End time").Value(&in.EndTime).Validate(validateOptionalClock),
			huh.NewInput().Title("Location").Value(&in.Location),
			huh.NewText().Title("Notes").Value(&in.Notes),
		),
		huh.NewGroup(
			huh.NewInput().Title("Student initials (student events only)").Value(&in.StudentInitials),
			huh.NewInput().Title("Program").Placeholder("Tier 1").Value(&in.Program),
			huh.NewInput().Title("Added by").Value(&in.AddedBy).Validate(validateRequired("added by")),
		),
	).WithTheme(clccalHuhTheme()).WithShowHelp(false)
}

func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(s)
}

func validateOptionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := calendar.ParseClock(s); !ok {
		return fmt.Errorf("use a time like 9:00 AM or 14:30")
	}
	return nil
}
