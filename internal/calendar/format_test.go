package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2 March 2026", FormatDate("2026-03-02"))
	assert.Equal(t, "2 March 2026", FormatDate("2026-03-02T10:00:00"))
	assert.Equal(t, "—", FormatDate(""))
	assert.Equal(t, "next tuesd", FormatDate("next tuesday"))
}

func TestFormatTime(t *testing.T) {
	cases := map[string]string{
		"09:00":      "9:00 AM",
		"13:30:00":   "1:30 PM",
		"3pm":        "3:00 PM",
		"":           "",
		"lunch":      "lunch",
		"afterwards": "after",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatTime(in), "input %q", in)
	}
}

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "9:00 AM – 10:30 AM", FormatTimeRange("09:00", "10:30"))
	assert.Equal(t, "9:00 AM", FormatTimeRange("09:00", ""))
	assert.Equal(t, "", FormatTimeRange("", "10:30"))
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "Monday 2 March 2026", FormatDay(day("2026-03-02")))
}
