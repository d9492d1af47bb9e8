package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func padRight(s string, n int) string {
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

// fitLeft pads or truncates s to exactly w cells.
func fitLeft(s string, w int) string {
	sw := lipgloss.Width(s)
	if sw > w {
		return lipgloss.NewStyle().MaxWidth(w).Render(s)
	}
	return padRight(s, w-sw)
}

func fitRight(s string, w int) string {
	sw := lipgloss.Width(s)
	if sw >= w {
		return s
	}
	return strings.Repeat(" ", w-sw) + s
}

// formatCount renders n with thousands separators, e.g. 1,234,567.
func formatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// compactCount renders axis labels: 950, 12k, 3.4M.
func compactCount(v float64) string {
	switch {
	case v >= 1e9:
		return trimZero(printer.Sprintf("%.1f", v/1e9)) + "B"
	case v >= 1e6:
		return trimZero(printer.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e4:
		return trimZero(printer.Sprintf("%.1f", v/1e3)) + "k"
	case v == float64(int64(v)):
		return printer.Sprintf("%d", int64(v))
	default:
		return trimZero(printer.Sprintf("%.2f", v))
	}
}

func trimZero(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
