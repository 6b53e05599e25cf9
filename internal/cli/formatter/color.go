package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette follows the map's popup accents on a dark background.
var (
	ColorGreen  = lipgloss.Color("#00c46a")
	ColorYellow = lipgloss.Color("#ffb545")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#aaaaaa")
	ColorFg     = lipgloss.Color("#ececec")
	ColorHeader = lipgloss.Color("#ffb545")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// KindColor is the accent used for a workout kind: green for running,
// yellow for cycling.
func KindColor(k domain.Kind) lipgloss.Style {
	switch k {
	case domain.KindRunning:
		return StyleGreen
	case domain.KindCycling:
		return StyleYellow
	default:
		return StyleDim
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
