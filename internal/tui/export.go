package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"covidchart/internal/covid"
	"covidchart/internal/export"
)

const (
	htmlExportPath = "covidchart.html"
	pngExportPath  = "covidchart.png"
)

type exportDoneMsg struct {
	path string
	err  error
}

func (m Model) exportTitle() string {
	return "COVID-19 " + covid.FormatDate(m.vm.Start) + " to " + covid.FormatDate(m.vm.End)
}

// exportCmd writes the current view model in the background so the UI
// stays responsive while go-chart rasterises.
func exportCmd(path string, render func(f *os.File) error) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{path: path, err: err}
		}
		err = render(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) exportHTML() tea.Cmd {
	vm, title := m.vm, m.exportTitle()
	return exportCmd(htmlExportPath, func(f *os.File) error { return export.HTML(f, vm, title) })
}

func (m Model) exportPNG() tea.Cmd {
	vm, title := m.vm, m.exportTitle()
	w, h := m.opts.ExportWidth, m.opts.ExportHeight
	if w <= 0 || h <= 0 {
		w, h = 1200, 600
	}
	return exportCmd(pngExportPath, func(f *os.File) error { return export.PNG(f, vm, title, w, h) })
}

func (m *Model) exportDone(msg exportDoneMsg) {
	if msg.err != nil {
		m.status = "export failed: " + msg.err.Error()
		logrus.WithError(msg.err).WithField("path", msg.path).Error("export")
		return
	}
	m.status = "exported " + msg.path
	logrus.WithField("path", msg.path).Info("exported chart")
}
