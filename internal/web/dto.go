package web

import (
	"time"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

type eventDTO struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Category        string        `json:"category"`
	Date            string        `json:"date"`
	EndDate         string        `json:"end_date,omitempty"`
	StartTime       string        `json:"start_time,omitempty"`
	EndTime         string        `json:"end_time,omitempty"`
	TimeLabel       string        `json:"time_label,omitempty"`
	Location        string        `json:"location,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	AddedBy         string        `json:"added_by,omitempty"`
	Program         string        `json:"program,omitempty"`
	StudentInitials string        `json:"student_initials,omitempty"`
	Label           string        `json:"label"`
	Accent          domain.Accent `json:"accent"`
	ReadOnly        bool          `json:"read_only"`
	Undated         bool          `json:"undated,omitempty"`
}

func toEventDTO(rec domain.EventRecord) eventDTO {
	dto := eventDTO{
		ID:              rec.ID,
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
		Label:           rec.Label(),
		Accent:          rec.Accent(),
		ReadOnly:        rec.IsReadOnly(),
		Undated:         rec.IsUndated(),
	}
	if !rec.IsUndated() {
		dto.Date = domain.DateKey(rec.StartDate)
	}
	if rec.IsMultiDay() {
		dto.EndDate = domain.DateKey(*rec.EndDate)
	}
	if rec.StartTime != "" {
		dto.TimeLabel = calendar.FormatTimeRange(rec.StartTime, rec.EndTime)
	}
	return dto
}

func toEventDTOs(recs []domain.EventRecord) []eventDTO {
	out := make([]eventDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, toEventDTO(r))
	}
	return out
}

type cellDTO struct {
	Date     string     `json:"date"`
	Padding  bool       `json:"padding,omitempty"`
	Today    bool       `json:"today,omitempty"`
	Selected bool       `json:"selected,omitempty"`
	Events   []eventDTO `json:"events"`
	Overflow int        `json:"overflow,omitempty"`
}

func toCellDTO(c calendar.DayCell) cellDTO {
	return cellDTO{
		Date:     domain.DateKey(c.Date),
		Padding:  c.Padding,
		Today:    c.IsToday,
		Selected: c.IsSelected,
		Events:   toEventDTOs(c.Events),
		Overflow: c.Overflow,
	}
}

type monthDTO struct {
	Month    string      `json:"month"`
	Title    string      `json:"title"`
	Prev     string      `json:"prev"`
	Next     string      `json:"next"`
	Today    string      `json:"today"`
	Weeks    [][]cellDTO `json:"weeks"`
	Undated  []eventDTO  `json:"undated"`
	Warnings []string    `json:"warnings,omitempty"`
}

func toMonthDTO(v *service.MonthView) monthDTO {
	dto := monthDTO{
		Month:    v.Grid.Month.String(),
		Title:    v.Grid.Month.Title(),
		Prev:     v.Grid.Month.Prev().String(),
		Next:     v.Grid.Month.Next().String(),
		Today:    domain.DateKey(v.Today),
		Undated:  toEventDTOs(v.Grid.Undated),
		Warnings: v.Warnings,
	}
	for _, week := range v.Grid.Weeks {
		row := make([]cellDTO, 0, len(week))
		for _, c := range week {
			row = append(row, toCellDTO(c))
		}
		dto.Weeks = append(dto.Weeks, row)
	}
	return dto
}

type weekDTO struct {
	Start    string     `json:"start"`
	End      string     `json:"end"`
	Prev     string     `json:"prev"`
	Next     string     `json:"next"`
	Days     []cellDTO  `json:"days"`
	Undated  []eventDTO `json:"undated"`
	Warnings []string   `json:"warnings,omitempty"`
}

func toWeekDTO(v *service.WeekView) weekDTO {
	dto := weekDTO{
		Start:    domain.DateKey(v.Grid.Start),
		End:      domain.DateKey(v.Grid.End()),
		Prev:     domain.DateKey(calendar.PrevWeek(v.Grid.Start)),
		Next:     domain.DateKey(calendar.NextWeek(v.Grid.Start)),
		Undated:  toEventDTOs(v.Grid.Undated),
		Warnings: v.Warnings,
	}
	for _, c := range v.Grid.Days {
		dto.Days = append(dto.Days, toCellDTO(c))
	}
	return dto
}

type agendaGroupDTO struct {
	Date    string     `json:"date,omitempty"`
	Header  string     `json:"header"`
	Today   bool       `json:"today,omitempty"`
	Undated bool       `json:"undated,omitempty"`
	Entries []eventDTO `json:"entries"`
}

type agendaDTO struct {
	From     string           `json:"from"`
	To       string           `json:"to"`
	Count    int              `json:"count"`
	Groups   []agendaGroupDTO `json:"groups"`
	Warnings []string         `json:"warnings,omitempty"`
}

func toAgendaDTO(v *service.AgendaView) agendaDTO {
	dto := agendaDTO{
		From:     domain.DateKey(v.Agenda.Window.From),
		To:       domain.DateKey(v.Agenda.Window.To),
		Count:    v.Agenda.Count,
		Groups:   make([]agendaGroupDTO, 0, len(v.Agenda.Groups)),
		Warnings: v.Warnings,
	}
	for _, g := range v.Agenda.Groups {
		group := agendaGroupDTO{Header: g.Header, Today: g.IsToday, Undated: g.Undated, Entries: toEventDTOs(g.Entries)}
		if !g.Undated {
			group.Date = domain.DateKey(g.Date)
		}
		dto.Groups = append(dto.Groups, group)
	}
	return dto
}

type timelineCellDTO struct {
	Date    string   `json:"date"`
	State   string   `json:"state"`
	Markers []string `json:"markers,omitempty"`
}

type timelineRowDTO struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Start  string            `json:"start"`
	End    string            `json:"end"`
	Accent domain.Accent     `json:"accent"`
	Cells  []timelineCellDTO `json:"cells"`
}

type timelineGroupDTO struct {
	Program string           `json:"program"`
	Accent  domain.Accent    `json:"accent"`
	Rows    []timelineRowDTO `json:"rows"`
}

type timelineDTO struct {
	From             string             `json:"from"`
	To               string             `json:"to"`
	Columns          []string           `json:"columns"`
	Groups           []timelineGroupDTO `json:"groups"`
	TooWide          bool               `json:"too_wide"`
	RequestedColumns int                `json:"requested_columns"`
	Warnings         []string           `json:"warnings,omitempty"`
}

func toTimelineDTO(v *service.TimelineView) timelineDTO {
	dto := timelineDTO{
		From:             domain.DateKey(v.Window.From),
		To:               domain.DateKey(v.Window.To),
		Columns:          dateKeys(v.Timeline.Columns),
		Groups:           make([]timelineGroupDTO, 0, len(v.Timeline.Groups)),
		TooWide:          v.Timeline.TooWide,
		RequestedColumns: v.Timeline.RequestedColumns,
		Warnings:         v.Warnings,
	}
	for _, g := range v.Timeline.Groups {
		group := timelineGroupDTO{Program: g.Program.DisplayName(), Accent: g.Accent}
		for _, r := range g.Rows {
			row := timelineRowDTO{
				ID:     r.ID,
				Label:  r.Label,
				Start:  domain.DateKey(r.Start),
				End:    domain.DateKey(r.End),
				Accent: r.Accent,
			}
			for _, c := range r.Cells {
				cell := timelineCellDTO{Date: domain.DateKey(c.Date), State: c.State.String()}
				for _, m := range c.Markers {
					cell.Markers = append(cell.Markers, string(m))
				}
				row.Cells = append(row.Cells, cell)
			}
			group.Rows = append(group.Rows, row)
		}
		dto.Groups = append(dto.Groups, group)
	}
	return dto
}

type transitionDayDTO struct {
	Day         string `json:"day"`
	OnSite      bool   `json:"on_site"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Description string `json:"description"`
}

type transitionWeekDTO struct {
	ID             string             `json:"id"`
	Term           int                `json:"term"`
	Label          string             `json:"label"`
	WeekStart      string             `json:"week_start"`
	Days           []transitionDayDTO `json:"days"`
	OffsiteMinutes int                `json:"offsite_minutes"`
}

type studentScheduleDTO struct {
	StudentInitials string              `json:"student_initials"`
	Program         string              `json:"program"`
	Accent          domain.Accent       `json:"accent"`
	Weeks           []transitionWeekDTO `json:"weeks"`
}

type transitionsDTO struct {
	Students []studentScheduleDTO `json:"students"`
	Warnings []string             `json:"warnings,omitempty"`
}

func toTransitionsDTO(v *service.TransitionsView) transitionsDTO {
	dto := transitionsDTO{Students: make([]studentScheduleDTO, 0, len(v.Students)), Warnings: v.Warnings}
	for _, s := range v.Students {
		student := studentScheduleDTO{StudentInitials: s.StudentInitials, Program: s.Program.DisplayName(), Accent: s.Accent}
		for _, w := range s.Weeks {
			week := transitionWeekDTO{
				ID:             w.Week.ID,
				Term:           w.Week.Term,
				Label:          w.Week.WeekLabel,
				WeekStart:      w.Week.RawWeekStart,
				OffsiteMinutes: w.OffsiteMinutes,
			}
			for _, d := range w.Days {
				day := transitionDayDTO{Day: d.Name, OnSite: d.OnSite(), Description: d.Describe()}
				if d.Offsite != nil {
					day.Start, day.End = d.Offsite.Start, d.Offsite.End
				}
				week.Days = append(week.Days, day)
			}
			student.Weeks = append(student.Weeks, week)
		}
		dto.Students = append(dto.Students, student)
	}
	return dto
}

func dateKeys(days []time.Time) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, domain.DateKey(d))
	}
	return out
}
