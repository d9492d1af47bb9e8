package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	sliderHeight = 2
	footerHeight = 2
)

// layout is the screen geometry shared by View and the mouse handling in
// Update.
type layout struct {
	contentW, contentH int
	sidebarW           int
	chartX, chartY     int
	chartW, chartH     int
}

func (m Model) layout() layout {
	l := layout{contentW: max(20, m.width)}
	l.contentH = max(plotChromeRows+2, m.height-headerHeight-sliderHeight-footerHeight)
	if m.showSidebar {
		l.sidebarW = sidebarWidth
		l.chartX = sidebarWidth + 1
	}
	l.chartY = headerHeight + sliderHeight
	l.chartW = max(10, l.contentW-l.chartX)
	l.chartH = l.contentH
	return l
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	// Header
	title := " covidchart ─ COVID-19 cases and deaths "
	if m.path != "" {
		title += "─ " + m.path + " "
	}
	header := lipgloss.NewStyle().Width(l.contentW).MaxWidth(l.contentW).Render(titleStyle.Render(title))

	sliders := lipgloss.NewStyle().Width(l.contentW).MaxWidth(l.contentW).Render(m.renderSliders(l.contentW))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.countries.SetSize(sidebarWidth-2, l.contentH)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Height(l.contentH).Render(m.countries.View())
	}

	var chart string
	switch {
	case m.showFiles:
		m.files.SetSize(min(48, l.chartW-4), min(l.chartH-2, 20))
		box := boxStyle.Render(m.files.View())
		chart = lipgloss.Place(l.chartW, l.chartH, lipgloss.Center, lipgloss.Center, box)
	case m.showRecords:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(l.chartW, max(32, colW+4))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(l.chartH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		chart = lipgloss.Place(l.chartW, l.chartH, lipgloss.Center, lipgloss.Center, box)
	case m.inspectPopup != "":
		box := boxStyle.MaxWidth(min(60, l.chartW)).Render(m.inspectPopup)
		chart = lipgloss.Place(l.chartW, l.chartH, lipgloss.Left, lipgloss.Center, box)
	default:
		chart = m.renderChart(l)
	}
	chart = lipgloss.NewStyle().Width(l.chartW).Height(l.chartH).MaxHeight(l.chartH).Render(chart)

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", chart)
	} else {
		body = chart
	}

	// Footer: status and tooltip, then help
	status := dimStyle.Render(" " + m.status + " ")
	tip := ""
	if t := m.tooltip(); t != "" {
		tip = hoverStyle.Render(" " + t + " ")
	}
	spacer := max(0, l.contentW-lipgloss.Width(status)-lipgloss.Width(tip))
	line1 := status + strings.Repeat(" ", spacer) + tip
	line2 := ""
	if m.helpVisible {
		line2 = " " + m.help.ShortHelpView(m.keys.ShortHelp())
	}
	footer := lipgloss.NewStyle().Width(l.contentW).MaxWidth(l.contentW).Render(line1 + "\n" + line2)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, sliders, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).MaxHeight(m.height).Render(ui)
}

// fullHelp lists every binding in columns for the inspect box.
func (m Model) fullHelp() string {
	var cols []string
	for _, group := range m.keys.FullHelp() {
		var lines []string
		for _, b := range group {
			h := b.Help()
			if h.Key == "" {
				continue
			}
			lines = append(lines, padRight(h.Key, max(0, 7-lipgloss.Width(h.Key)))+h.Desc)
		}
		cols = append(cols, strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(cols, "   ")...)
}

func interleave(cols []string, sep string) []string {
	out := make([]string, 0, 2*len(cols))
	for i, c := range cols {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, c)
	}
	return out
}
