package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatHours renders a fractional hour count compactly: "2h", "1.5h",
// "45m" for sub-hour amounts.
func FormatHours(hours float64) string {
	if hours <= 0 {
		return "0h"
	}
	if hours < 1 {
		return fmt.Sprintf("%dm", int(math.Round(hours*60)))
	}
	s := strconv.FormatFloat(hours, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + "h"
}

// FormatDays renders exam proximity as a short phrase.
func FormatDays(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %dd", days)
	}
}

// TruncID shortens a UUID-like identifier to its first 8 characters.
func TruncID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// MasteryBar renders a fixed-width progress bar for a [0,1] mastery
// score, colored by level.
func MasteryBar(mastery float64, width int) string {
	if width <= 0 {
		width = 10
	}
	if mastery < 0 {
		mastery = 0
	}
	if mastery > 1 {
		mastery = 1
	}
	filled := int(math.Round(mastery * float64(width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleRed
	switch {
	case mastery >= 0.75:
		style = StyleGreen
	case mastery >= 0.5:
		style = StyleYellow
	}
	return style.Render(bar) + Dim(fmt.Sprintf(" %3.0f%%", mastery*100))
}
