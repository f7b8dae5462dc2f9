package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a bulk import file. Any
// section may be omitted.
type ImportSchema struct {
	Events      []EventImport      `json:"events,omitempty" yaml:"events,omitempty"`
	Governance  []GovernanceImport `json:"governance,omitempty" yaml:"governance,omitempty"`
	Series      []SeriesImport     `json:"series,omitempty" yaml:"series,omitempty"`
	Transitions []TransitionImport `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// EventImport defines a general or student event in the import file.
type EventImport struct {
	Title           string `json:"title" yaml:"title"`
	Category        string `json:"category,omitempty" yaml:"category,omitempty"`
	Date            string `json:"date" yaml:"date"`
	EndDate         string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	StartTime       string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Location        string `json:"location,omitempty" yaml:"location,omitempty"`
	Notes           string `json:"notes,omitempty" yaml:"notes,omitempty"`
	AddedBy         string `json:"added_by,omitempty" yaml:"added_by,omitempty"`
	Program         string `json:"program,omitempty" yaml:"program,omitempty"`
	StudentInitials string `json:"student_initials,omitempty" yaml:"student_initials,omitempty"`
}

// GovernanceImport defines a single PAC meeting occurrence.
type GovernanceImport struct {
	Date        string `json:"date" yaml:"date"`
	MeetingType string `json:"meeting_type,omitempty" yaml:"meeting_type,omitempty"`
	StartTime   string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Chair       string `json:"chair,omitempty" yaml:"chair,omitempty"`
}

// SeriesImport defines a recurring PAC meeting, materialized on import.
type SeriesImport struct {
	Rule    string           `json:"rule" yaml:"rule"`
	Start   string           `json:"start" yaml:"start"`
	Until   string           `json:"until,omitempty" yaml:"until,omitempty"`
	ExDates []string         `json:"exdates,omitempty" yaml:"exdates,omitempty"`
	Meeting GovernanceImport `json:"meeting" yaml:"meeting"`
}

// TransitionImport defines one week of a student's transition schedule.
// Days are keyed mon..fri; a missing day is on-site.
type TransitionImport struct {
	StudentInitials string                   `json:"student_initials" yaml:"student_initials"`
	Program         string                   `json:"program,omitempty" yaml:"program,omitempty"`
	Term            int                      `json:"term" yaml:"term"`
	WeekLabel       string                   `json:"week_label,omitempty" yaml:"week_label,omitempty"`
	WeekStart       string                   `json:"week_start" yaml:"week_start"`
	Days            map[string]OffsiteImport `json:"days,omitempty" yaml:"days,omitempty"`
}

// OffsiteImport is the off-site window of one weekday.
type OffsiteImport struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// DayKeys are the accepted keys of TransitionImport.Days in weekday order.
var DayKeys = [5]string{"mon", "tue", "wed", "thu", "fri"}

// Len counts the records the schema describes, series counted once each.
func (s *ImportSchema) Len() int {
	return len(s.Events) + len(s.Governance) + len(s.Series) + len(s.Transitions)
}

// LoadImportSchema reads and parses an import file. Files ending in .yaml
// or .yml are read as YAML, everything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes an import document, rejecting unknown fields.
func ParseJSON(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// ParseYAML decodes a YAML import document, rejecting unknown fields. An
// empty document is an empty schema.
func ParseYAML(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
