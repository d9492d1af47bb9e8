package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"covidchart/internal/covid"
)

// hoverState holds the chart position under the mouse and the nearest
// plotted vertex, if any.
type hoverState struct {
	in     bool
	at     time.Time
	value  float64
	metric covid.Metric

	found bool
	v     vertex
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		l := m.layout()
		m.countries.SetSize(sidebarWidth-2, l.contentH)
		return m, nil
	case exportDoneMsg:
		m.exportDone(msg)
		return m, nil
	case tea.MouseMsg:
		m.updateHover(msg)
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Everything else, e.g. list.FilterMatchesMsg or cursor blinks, goes to
	// the component that is active.
	var cmd tea.Cmd
	switch {
	case m.dateEntry:
		m.input, cmd = m.input.Update(msg)
	case m.showFiles:
		m.files, cmd = m.files.Update(msg)
	default:
		m.countries, cmd = m.countries.Update(msg)
	}
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dateEntry {
		return m.updateDateEntry(msg)
	}
	if m.showFiles {
		return m.updateFiles(msg)
	}
	// While the country filter is being typed, every key belongs to the list.
	if m.showSidebar && m.countries.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.countries, cmd = m.countries.Update(msg)
		return m, cmd
	}
	if m.showRecords {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Records):
			m.showRecords = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Toggle) && m.showSidebar:
		return m, m.toggleCurrent()
	case key.Matches(msg, k.Clear):
		m.setSelection(m.sel.Clear())
		m.status = "selection cleared"
		return m, m.syncCountryItems()
	case key.Matches(msg, k.StartBack):
		m.moveStart(-1)
	case key.Matches(msg, k.StartFwd):
		m.moveStart(1)
	case key.Matches(msg, k.EndBack):
		m.moveEnd(-1)
	case key.Matches(msg, k.EndFwd):
		m.moveEnd(1)
	case key.Matches(msg, k.StepDown):
		m.stepDays = nextStep(m.stepDays, -1)
		m.status = fmt.Sprintf("step: %dd", m.stepDays)
	case key.Matches(msg, k.StepUp):
		m.stepDays = nextStep(m.stepDays, 1)
		m.status = fmt.Sprintf("step: %dd", m.stepDays)
	case key.Matches(msg, k.Reset):
		m.resetWindow()
	case key.Matches(msg, k.EnterDates):
		m.dateEntry = true
		m.input.SetValue(covid.FormatDate(m.sel.Start) + " " + covid.FormatDate(m.sel.End))
		m.input.CursorEnd()
		m.status = "enter START END, Enter to apply, Esc to cancel"
		return m, m.input.Focus()
	case key.Matches(msg, k.Cases):
		m.showCases = !m.showCases
		m.hover = hoverState{}
		m.status = fmt.Sprintf("cases: %v", m.showCases)
	case key.Matches(msg, k.Deaths):
		m.showDeaths = !m.showDeaths
		m.hover = hoverState{}
		m.status = fmt.Sprintf("deaths: %v", m.showDeaths)
	case key.Matches(msg, k.Records):
		m.refreshRecords()
		if len(m.tbl.Rows()) == 0 {
			m.status = "no records in the current view"
			return m, nil
		}
		m.showRecords = true
		m.status = fmt.Sprintf("%d records", len(m.tbl.Rows()))
	case key.Matches(msg, k.Inspect):
		if m.inspectPopup != "" {
			m.inspectPopup = ""
		} else {
			m.inspectPopup = m.inspectText()
			m.status = "inspect popup"
		}
	case key.Matches(msg, k.Files):
		m.refreshDir()
		m.showFiles = true
	case key.Matches(msg, k.ExportHTML), key.Matches(msg, k.ExportPNG):
		if m.vm.Empty {
			m.status = "nothing to export: " + emptyMessage
			return m, nil
		}
		m.status = "exporting..."
		if key.Matches(msg, k.ExportHTML) {
			return m, m.exportHTML()
		}
		return m, m.exportPNG()
	case key.Matches(msg, k.Sidebar):
		m.showSidebar = !m.showSidebar
		m.hover = hoverState{}
	case key.Matches(msg, k.Help):
		m.helpVisible = !m.helpVisible
	case key.Matches(msg, k.AllKeys):
		m.inspectPopup = m.fullHelp()
	case key.Matches(msg, k.Close) && m.inspectPopup != "":
		m.inspectPopup = ""
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.countries, cmd = m.countries.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updateDateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dateEntry = false
		m.input.Blur()
		m.status = "date entry cancelled"
		return m, nil
	case tea.KeyEnter:
		start, end, err := parseWindow(strings.TrimSpace(m.input.Value()), m.sel, m.minDate, m.maxDate)
		if err != nil {
			m.status = "dates: " + err.Error()
			return m, nil
		}
		m.dateEntry = false
		m.input.Blur()
		m.setSelection(m.sel.WithWindow(start, end))
		m.status = "window " + covid.FormatDate(start) + " .. " + covid.FormatDate(end)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateFiles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.files.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Files):
			m.showFiles = false
			return m, nil
		case msg.Type == tea.KeyEnter:
			if it, ok := m.files.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
			m.showFiles = false
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)
	return m, cmd
}

// updateHover reads the date and value under the mouse and finds the nearest
// plotted vertex.
func (m *Model) updateHover(msg tea.MouseMsg) {
	m.hover = hoverState{}
	if m.showFiles || m.showRecords || m.inspectPopup != "" {
		return
	}
	g := m.plot(m.layout())
	if !g.ok {
		return
	}
	cx, cy := msg.X-g.x0, msg.Y-g.y0
	if cx < 0 || cx >= g.pw || cy < 0 || cy >= g.ph {
		return
	}
	hx, hy := cx*2+1, cy*4+2
	m.hover.in = true
	m.hover.at = g.sc.X.Invert(float64(hx))
	m.hover.metric = covid.Cases
	if !m.showCases && m.showDeaths {
		m.hover.metric = covid.Deaths
	}
	m.hover.value = max(0, g.sc.Y(m.hover.metric).Invert(float64(hy)))
	if v, ok := m.nearestVertex(g, hx, hy); ok {
		m.hover.found, m.hover.v = true, v
	}
}
