package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		ColumnBorder: "#5F87D7",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		High:      "#FF5F5F",
		Medium:    "#FFD700",
		Low:       "#5FD75F",
		Completed: "#585858",

		ErrorFg: "#FF0000",
	}
}
