package domain

// Accent is the display treatment of a category or program: a foreground
// color, a background color and a glyph.
type Accent struct {
	Color      string `json:"color"`
	Background string `json:"background"`
	Glyph      string `json:"glyph"`
}

var categoryAccents = map[Category]Accent{
	CategoryStaffMeeting:      {Color: "#1a2e4a", Background: "#e8edf3", Glyph: "👥"},
	CategoryPACMeeting:        {Color: "#6d28d9", Background: "#ede9fe", Glyph: "🏛️"},
	CategoryPD:                {Color: "#065f46", Background: "#d1fae5", Glyph: "📚"},
	CategoryTeamMeeting:       {Color: "#1d4ed8", Background: "#dbeafe", Glyph: "🤝"},
	CategoryExcursion:         {Color: "#92400e", Background: "#fef3c7", Glyph: "🎒"},
	CategoryStaffAbsence:      {Color: "#b91c1c", Background: "#fee2e2", Glyph: "🏠"},
	CategoryBirthday:          {Color: "#be185d", Background: "#fce7f3", Glyph: "🎂"},
	CategoryEntryMeeting:      {Color: "#0f766e", Background: "#ccfbf1", Glyph: "🚪"},
	CategoryReviewMeeting:     {Color: "#4338ca", Background: "#e0e7ff", Glyph: "📝"},
	CategoryTransitionMeeting: {Color: "#a16207", Background: "#fef9c3", Glyph: "🔀"},
	CategoryTACMeeting:        {Color: "#7c2d12", Background: "#ffedd5", Glyph: "🧩"},
	CategoryStudentPlacement:  {Color: "#155e75", Background: "#cffafe", Glyph: "🎓"},
	CategoryOther:             {Color: "#374151", Background: "#f3f4f6", Glyph: "📌"},
}

var programAccents = map[Program]Accent{
	ProgramTier1: {Color: "#166534", Background: "#dcfce7"},
	ProgramTier2: {Color: "#1e40af", Background: "#dbeafe"},
	ProgramTier3: {Color: "#9a3412", Background: "#ffedd5"},
}

// CategoryAccent returns the accent for c, falling back to the Other accent
// for unknown categories.
func CategoryAccent(c Category) Accent {
	if a, ok := categoryAccents[c]; ok {
		return a
	}
	return categoryAccents[CategoryOther]
}

// ProgramAccent returns the accent for a recognized program.
func ProgramAccent(p Program) (Accent, bool) {
	a, ok := programAccents[p]
	return a, ok
}

// ResolveAccent picks the accent for a record. A recognized program overrides
// the category colors only for student-related categories; the glyph always
// comes from the category.
func ResolveAccent(c Category, p Program) Accent {
	accent := CategoryAccent(c)
	if !c.IsStudentRelated() {
		return accent
	}
	if pa, ok := ProgramAccent(p); ok {
		accent.Color = pa.Color
		accent.Background = pa.Background
	}
	return accent
}
