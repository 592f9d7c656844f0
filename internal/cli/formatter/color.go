package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// AutoDetectColor drops to plain output when stdout is not a terminal,
// so piped and redirected output stays free of escape sequences.
func AutoDetectColor() {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// MasteryColor returns the style corresponding to the given mastery level.
func MasteryColor(level domain.MasteryLevel) lipgloss.Style {
	switch level {
	case domain.MasteryFull:
		return StyleGreen
	case domain.MasteryPartial:
		return StyleYellow
	case domain.MasteryNone:
		return StyleRed
	default:
		return StyleDim
	}
}

// MasteryIndicator returns a colored mastery badge such as "● MASTERED".
func MasteryIndicator(level domain.MasteryLevel) string {
	switch level {
	case domain.MasteryFull:
		return StyleGreen.Render("● MASTERED")
	case domain.MasteryPartial:
		return StyleYellow.Render("● PARTIAL")
	case domain.MasteryNone:
		return StyleRed.Render("● NOT MASTERED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// StressIndicator returns a colored stress badge for the plan header.
func StressIndicator(level domain.StressLevel) string {
	switch level {
	case domain.StressHigh:
		return StyleRed.Render("STRESS: HIGH")
	case domain.StressMedium:
		return StyleYellow.Render("STRESS: MEDIUM")
	default:
		return StyleGreen.Render("STRESS: LOW")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
