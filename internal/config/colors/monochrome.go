package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		ColumnBorder: "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#FFFFFF",

		High:      "#FFFFFF",
		Medium:    "#C0C0C0",
		Low:       "#A0A0A0",
		Completed: "#606060",

		ErrorFg: "#FFFFFF",
	}
}
