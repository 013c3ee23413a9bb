package plotpage

// Theme is a page colour theme.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeConfig holds the colours of one theme.
type ThemeConfig struct {
	Background    string
	Surface       string
	Border        string
	TextPrimary   string
	TextSecondary string
	TextMuted     string
	Accent        string
	AccentSubtle  string

	Good    string
	Warning string
	Bad     string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// EChartsTheme is the registered echarts theme name; empty uses the default.
	EChartsTheme string
}

// ParseTheme maps a name to a Theme, falling back to dark.
func ParseTheme(name string) Theme {
	if Theme(name) == ThemeLight {
		return ThemeLight
	}

	return ThemeDark
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeLight {
		return lightTheme
	}

	return darkTheme
}

// Palette returns the series colours for a theme. The first two match the
// load colours of the static charts and the workbook.
func Palette(theme Theme) []string {
	if theme == ThemeLight {
		return lightPalette
	}

	return darkPalette
}

var lightTheme = ThemeConfig{
	Background:    "#fafaf9", // stone-50.
	Surface:       "#ffffff",
	Border:        "#e7e5e4", // stone-200.
	TextPrimary:   "#1c1917", // stone-900.
	TextSecondary: "#44403c", // stone-700.
	TextMuted:     "#78716c", // stone-500.
	Accent:        "#a16207", // amber-700.
	AccentSubtle:  "#fef3c7", // amber-100.

	Good:    "#16a34a",
	Warning: "#ca8a04",
	Bad:     "#dc2626",

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e",
	ChartText:       "#44403c",
	ChartTextMuted:  "#78716c",
}

var darkTheme = ThemeConfig{
	Background:    "#0c0a09", // stone-950.
	Surface:       "#1c1917", // stone-900.
	Border:        "#44403c", // stone-700.
	TextPrimary:   "#fafaf9",
	TextSecondary: "#d6d3d1",
	TextMuted:     "#a8a29e",
	Accent:        "#d97706", // amber-600.
	AccentSubtle:  "#451a03", // amber-950.

	Good:    "#22c55e",
	Warning: "#eab308",
	Bad:     "#ef4444",

	ChartBackground: "transparent",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e",
	ChartText:       "#d6d3d1",
	ChartTextMuted:  "#a8a29e",
}

var lightPalette = []string{"#4682b4", "#ff7f50", "#4d7c0f", "#7c3aed", "#be185d", "#0891b2", "#c2410c"}

var darkPalette = []string{"#4682b4", "#ff7f50", "#a3e635", "#a78bfa", "#f472b6", "#22d3ee", "#fb923c"}
