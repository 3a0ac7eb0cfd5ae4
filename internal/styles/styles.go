package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// Palette holds all theme colors.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string

	Success string
	Error   string

	TextPrimary   string
	TextSecondary string
	TextMuted     string

	BgPrimary   string
	BgSecondary string
	BgTertiary  string

	BorderNormal string
	BorderActive string
	BorderMuted  string

	ToastSuccessText string
	ToastErrorText   string
}

// Theme is a named palette.
type Theme struct {
	Name        string
	DisplayName string
	Colors      Palette
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: Palette{
			Primary:          "#7C3AED", // Purple
			Secondary:        "#3B82F6", // Blue
			Accent:           "#F59E0B", // Amber
			Success:          "#10B981",
			Error:            "#EF4444",
			TextPrimary:      "#F9FAFB",
			TextSecondary:    "#9CA3AF",
			TextMuted:        "#6B7280",
			BgPrimary:        "#111827",
			BgSecondary:      "#1F2937",
			BgTertiary:       "#374151",
			BorderNormal:     "#374151",
			BorderActive:     "#7C3AED",
			BorderMuted:      "#1F2937",
			ToastSuccessText: "#000000",
			ToastErrorText:   "#FFFFFF",
		},
	}

	DraculaTheme = Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: Palette{
			Primary:          "#BD93F9",
			Secondary:        "#8BE9FD",
			Accent:           "#FFB86C",
			Success:          "#50FA7B",
			Error:            "#FF5555",
			TextPrimary:      "#F8F8F2",
			TextSecondary:    "#BFBFBF",
			TextMuted:        "#6272A4",
			BgPrimary:        "#282A36",
			BgSecondary:      "#343746",
			BgTertiary:       "#44475A",
			BorderNormal:     "#44475A",
			BorderActive:     "#BD93F9",
			BorderMuted:      "#343746",
			ToastSuccessText: "#282A36",
			ToastErrorText:   "#F8F8F2",
		},
	}
)

var (
	themeMu       sync.RWMutex
	themeRegistry = map[string]Theme{
		DefaultTheme.Name: DefaultTheme,
		DraculaTheme.Name: DraculaTheme,
	}
	currentTheme = DefaultTheme.Name
)

// Colors, updated by ApplyTheme.
var (
	Primary      lipgloss.Color
	Accent       lipgloss.Color
	TextPrimary  lipgloss.Color
	TextMuted    lipgloss.Color
	BorderNormal lipgloss.Color
	BorderActive lipgloss.Color
)

// Styles, rebuilt by ApplyTheme.
var (
	// Cards
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	CardActive  lipgloss.Style
	CardTitle   lipgloss.Style
	CardBody    lipgloss.Style
	PinMarker   lipgloss.Style

	// Text
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Header lipgloss.Style

	// Context menu
	MenuBox          lipgloss.Style
	MenuTitle        lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style

	// Footer and toasts
	Footer       lipgloss.Style
	KeyHint      lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
)

func init() {
	ApplyTheme(DefaultTheme.Name)
}

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// CurrentThemeName returns the name of the active theme.
func CurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name, updating all style variables.
// Unknown names fall back to the default theme.
func ApplyTheme(name string) {
	theme := GetTheme(name)
	applyColors(theme.Colors)
	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
}

func applyColors(c Palette) {
	Primary = lipgloss.Color(c.Primary)
	Accent = lipgloss.Color(c.Accent)
	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextMuted = lipgloss.Color(c.TextMuted)
	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	CardFocused = Card.
		BorderForeground(BorderActive).
		Border(lipgloss.ThickBorder())

	CardActive = Card.
		BorderForeground(lipgloss.Color(c.Secondary))

	CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	CardBody = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.TextSecondary))

	PinMarker = lipgloss.NewStyle().
		Foreground(Accent)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Header = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(lipgloss.Color(c.BgSecondary)).
		Padding(0, 1)

	MenuBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Background(lipgloss.Color(c.BgPrimary)).
		Padding(0, 1)

	MenuTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	MenuItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(lipgloss.Color(c.BgTertiary)).
		Bold(true)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(lipgloss.Color(c.BgSecondary))

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(lipgloss.Color(c.BgTertiary)).
		Padding(0, 1)

	ToastSuccess = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.ToastSuccessText)).
		Background(lipgloss.Color(c.Success)).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.ToastErrorText)).
		Background(lipgloss.Color(c.Error)).
		Padding(0, 1)
}
