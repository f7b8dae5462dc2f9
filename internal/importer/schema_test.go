package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDoc = `
events:
  - title: Staff briefing
    category: Staff Meeting
    date: 2026-03-02
    start_time: "8:15 AM"
governance:
  - date: 2026-03-09
    meeting_type: General
series:
  - rule: FREQ=MONTHLY;BYDAY=1MO
    start: 2026-02-02
    exdates: [2026-04-06]
    meeting:
      location: Library
transitions:
  - student_initials: J.S.
    term: 2
    week_start: 2026-04-20
    days:
      mon: {start: "9:00", end: "12:00"}
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadImportSchema_YAML(t *testing.T) {
	schema, err := LoadImportSchema(writeFile(t, "import.yaml", yamlDoc))
	require.NoError(t, err)

	require.Len(t, schema.Events, 1)
	assert.Equal(t, "2026-03-02", schema.Events[0].Date)
	assert.Equal(t, "8:15 AM", schema.Events[0].StartTime)
	require.Len(t, schema.Series, 1)
	assert.Equal(t, []string{"2026-04-06"}, schema.Series[0].ExDates)
	assert.Equal(t, "Library", schema.Series[0].Meeting.Location)
	require.Len(t, schema.Transitions, 1)
	assert.Equal(t, OffsiteImport{Start: "9:00", End: "12:00"}, schema.Transitions[0].Days["mon"])
	assert.Equal(t, 4, schema.Len())
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestLoadImportSchema_JSON(t *testing.T) {
	body := `{"governance":[{"date":"2026-03-09","start_time":"18:30"}]}`
	schema, err := LoadImportSchema(writeFile(t, "import.json", body))
	require.NoError(t, err)
	require.Len(t, schema.Governance, 1)
	assert.Equal(t, "18:30", schema.Governance[0].StartTime)
}

func TestLoadImportSchema_UnknownField(t *testing.T) {
	_, err := LoadImportSchema(writeFile(t, "import.json", `{"meetings":[]}`))
	assert.Error(t, err)

	_, err = LoadImportSchema(writeFile(t, "import.yml", "events:\n  - titel: typo\n"))
	assert.Error(t, err)
}

func TestLoadImportSchema_EmptyYAML(t *testing.T) {
	schema, err := LoadImportSchema(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Zero(t, schema.Len())
}

func TestLoadImportSchema_MissingFile(t *testing.T) {
	_, err := LoadImportSchema(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
