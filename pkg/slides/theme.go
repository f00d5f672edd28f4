package slides

type Theme string

const (
	ThemeIndigo   Theme = "indigo"
	ThemeSunset   Theme = "sunset"
	ThemeOcean    Theme = "ocean"
	ThemeForest   Theme = "forest"
	ThemeSlate    Theme = "slate"
	ThemePaper    Theme = "paper"
	ThemeMidnight Theme = "midnight"
)

const DefaultTheme = ThemeIndigo

// Palette is the concrete style preset behind a theme name. Gradient
// presets blend Background into Background2; flat presets ignore it.
type Palette struct {
	Name        Theme  `json:"name"`
	Background  string `json:"background"`
	Background2 string `json:"background2"`
	Foreground  string `json:"foreground"`
	Accent      string `json:"accent"`
	Gradient    bool   `json:"gradient"`
}

var palettes = map[Theme]Palette{
	ThemeIndigo:   {Name: ThemeIndigo, Background: "#4f46e5", Background2: "#7c3aed", Foreground: "#ffffff", Accent: "#c7d2fe", Gradient: true},
	ThemeSunset:   {Name: ThemeSunset, Background: "#f97316", Background2: "#db2777", Foreground: "#ffffff", Accent: "#fed7aa", Gradient: true},
	ThemeOcean:    {Name: ThemeOcean, Background: "#0ea5e9", Background2: "#2563eb", Foreground: "#ffffff", Accent: "#bae6fd", Gradient: true},
	ThemeForest:   {Name: ThemeForest, Background: "#059669", Background2: "#065f46", Foreground: "#ffffff", Accent: "#a7f3d0", Gradient: true},
	ThemeSlate:    {Name: ThemeSlate, Background: "#334155", Background2: "", Foreground: "#f1f5f9", Accent: "#94a3b8", Gradient: false},
	ThemePaper:    {Name: ThemePaper, Background: "#fafaf9", Background2: "", Foreground: "#1c1917", Accent: "#a8a29e", Gradient: false},
	ThemeMidnight: {Name: ThemeMidnight, Background: "#0f172a", Background2: "#1e1b4b", Foreground: "#e2e8f0", Accent: "#818cf8", Gradient: true},
}

func KnownTheme(t Theme) bool {
	_, ok := palettes[t]
	return ok
}

func Themes() []Theme {
	return []Theme{ThemeIndigo, ThemeSunset, ThemeOcean, ThemeForest, ThemeSlate, ThemePaper, ThemeMidnight}
}

// PaletteFor resolves a theme to its palette, falling back to the default
// preset for unknown names so rendering never breaks on bad data.
func PaletteFor(t Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[DefaultTheme]
}

// ThemeForColor derives a starting theme from a post-type accent color.
// Unknown colors get the default theme.
func ThemeForColor(color string) Theme {
	switch color {
	case "#6366f1", "#4f46e5":
		return ThemeIndigo
	case "#f59e0b", "#f97316":
		return ThemeSunset
	case "#0ea5e9", "#38bdf8":
		return ThemeOcean
	case "#10b981", "#059669":
		return ThemeForest
	case "#f43f5e", "#db2777":
		return ThemeSunset
	case "#64748b":
		return ThemeSlate
	}
	return DefaultTheme
}
