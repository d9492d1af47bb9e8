package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"covidchart/internal/covid"
)

// Options configures a new Model.
type Options struct {
	Path      string
	Countries []string
	StepDays  int
	Load      covid.LoadOptions
	// PNG size used by the in-app exporter.
	ExportWidth  int
	ExportHeight int
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	keys        Keymap
	help        help.Model

	status string

	// Data
	ds       *covid.Dataset
	path     string
	opts     Options
	minDate  time.Time
	maxDate  time.Time
	sel      covid.Selection
	vm       covid.ViewModel
	stepDays int

	// country checklist (sidebar)
	countries list.Model

	// File explorer
	showFiles bool
	cwd       string
	files     list.Model

	// date entry mode
	dateEntry bool
	input     textinput.Model

	// layer visibility
	showCases  bool
	showDeaths bool

	// inspect popup
	inspectPopup string

	hover hoverState

	// records table
	showRecords bool
	tbl         table.Model
}

// New builds the UI over ds. It refuses an empty dataset since the date
// sliders need a range.
func New(ds *covid.Dataset, opts Options) (Model, error) {
	first, last, err := ds.DateRange()
	if err != nil {
		return Model{}, err
	}
	if opts.StepDays < 1 {
		opts.StepDays = 7
	}
	m := Model{
		showSidebar: true,
		helpVisible: true,
		keys:        Keys,
		help:        help.New(),
		ds:          ds,
		path:        opts.Path,
		opts:        opts,
		minDate:     first,
		maxDate:     last,
		stepDays:    opts.StepDays,
		showCases:   true,
		showDeaths:  true,
		status:      "covidchart ready",
	}
	m.cwd, _ = os.Getwd()

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	m.countries = list.New(nil, d, 0, 0)
	m.countries.Title = "Countries"
	m.countries.SetShowHelp(false)
	m.countries.SetShowStatusBar(false)
	m.countries.SetFilteringEnabled(true)
	m.countries.KeyMap.Quit.SetEnabled(false)
	m.countries.KeyMap.ShowFullHelp.SetEnabled(false)

	fd := list.NewDefaultDelegate()
	fd.ShowDescription = false
	m.files = list.New(nil, fd, 0, 0)
	m.files.Title = "Files"
	m.files.SetShowHelp(false)
	m.files.SetShowStatusBar(false)
	m.files.SetFilteringEnabled(true)
	m.files.KeyMap.Quit.SetEnabled(false)

	m.input = textinput.New()
	m.input.Placeholder = "YYYY-MM-DD YYYY-MM-DD"
	m.input.CharLimit = 32
	m.input.Width = 30

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	var initial []string
	for _, c := range opts.Countries {
		if ds.HasCountry(c) {
			initial = append(initial, c)
		} else {
			logrus.WithField("country", c).Warn("ignoring unknown country")
		}
	}
	m.sel = covid.NewSelection(first, last, initial...)
	m.rebuild()
	m.syncCountryItems()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// Selection returns the current selection snapshot.
func (m Model) Selection() covid.Selection { return m.sel }

// ViewModel returns the view model of the current selection.
func (m Model) ViewModel() covid.ViewModel { return m.vm }

// setSelection replaces the selection snapshot and rebuilds the view model.
// Update is the only caller, so the selection has a single writer.
func (m *Model) setSelection(sel covid.Selection) {
	m.sel = sel
	m.rebuild()
}

func (m *Model) rebuild() {
	m.vm = covid.Build(m.ds, m.sel)
	m.hover = hoverState{}
	if m.showRecords {
		m.refreshRecords()
	}
	logrus.WithFields(logrus.Fields{
		"countries": m.sel.Len(),
		"start":     covid.FormatDate(m.sel.Start),
		"end":       covid.FormatDate(m.sel.End),
		"matched":   m.vm.Matched(),
	}).Debug("view rebuilt")
}
