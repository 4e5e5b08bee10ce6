package render

// Theme controls SVG colors and typography.
type Theme struct {
	Name       string
	Background string
	NodeFill   string
	NodeStroke string
	NoteFill   string
	NoteStroke string
	Text       string
	EdgeStroke string
	EdgeLabel  string
	FontFamily string
	FontSize   float64
}

// Built-in themes.
var (
	ThemeLight = Theme{
		Name:       "light",
		Background: "#ffffff",
		NodeFill:   "#f5f7fa",
		NodeStroke: "#4a5568",
		NoteFill:   "#fefcbf",
		NoteStroke: "#b7791f",
		Text:       "#1a202c",
		EdgeStroke: "#718096",
		EdgeLabel:  "#4a5568",
		FontFamily: "Helvetica, Arial, sans-serif",
		FontSize:   13,
	}

	ThemeDark = Theme{
		Name:       "dark",
		Background: "#1a202c",
		NodeFill:   "#2d3748",
		NodeStroke: "#a0aec0",
		NoteFill:   "#44403c",
		NoteStroke: "#d6bc8a",
		Text:       "#f7fafc",
		EdgeStroke: "#a0aec0",
		EdgeLabel:  "#cbd5e0",
		FontFamily: "Helvetica, Arial, sans-serif",
		FontSize:   13,
	}
)

// ThemeByName looks up a built-in theme, defaulting to light.
func ThemeByName(name string) Theme {
	if name == ThemeDark.Name {
		return ThemeDark
	}
	return ThemeLight
}
