package colors

// ColorScheme defines all configurable color values of the board view
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// UI element colors
	ColumnBorder string `yaml:"column_border"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted text such as times and tags
	Normal string `yaml:"normal"`

	// Priority badges
	High      string `yaml:"high"`
	Medium    string `yaml:"medium"`
	Low       string `yaml:"low"`
	Completed string `yaml:"completed"`

	// Error messages
	ErrorFg string `yaml:"error_fg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.ColumnBorder, preset.ColumnBorder)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.High, preset.High)
	fill(&c.Medium, preset.Medium)
	fill(&c.Low, preset.Low)
	fill(&c.Completed, preset.Completed)
	fill(&c.ErrorFg, preset.ErrorFg)
}
