package tui

import (
	"fmt"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"covidchart/internal/covid"
)

// refreshRecords rebuilds the records table from the current view model,
// grouped by country in selection order.
func (m *Model) refreshRecords() {
	tcols := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Country", Width: 20},
		{Title: "Date", Width: 10},
		{Title: "Cases", Width: 14},
		{Title: "Deaths", Width: 12},
	}
	var trows []table.Row
	for _, c := range m.vm.Countries {
		for _, r := range m.vm.Series(c) {
			trows = append(trows, table.Row{
				fmt.Sprintf("%d", len(trows)+1),
				r.Country,
				covid.FormatDate(r.Date),
				formatCount(r.CumulativeCases),
				formatCount(r.CumulativeDeaths),
			})
		}
	}
	// clear rows first so columns and rows never disagree in width
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// inspectText summarises the current view for the inspect popup.
func (m Model) inspectText() string {
	vm := m.vm
	lines := []string{
		fmt.Sprintf("file: %s", m.path),
		fmt.Sprintf("dataset: %s records, %d countries, %s .. %s",
			formatCount(int64(m.ds.Len())), len(m.ds.SortedCountries()), covid.FormatDate(m.minDate), covid.FormatDate(m.maxDate)),
		fmt.Sprintf("window: %s .. %s", covid.FormatDate(m.sel.Start), covid.FormatDate(m.sel.End)),
		fmt.Sprintf("selected: %d  matched records: %s", m.sel.Len(), formatCount(int64(vm.Matched()))),
	}
	if m.ds.Skipped() > 0 {
		lines = append(lines, fmt.Sprintf("skipped malformed rows: %d", m.ds.Skipped()))
	}
	if vm.Empty {
		lines = append(lines, emptyMessage)
		if vm.InvalidWindow {
			lines = append(lines, "start date is after end date")
		}
		return strings.Join(lines, "\n")
	}
	lines = append(lines,
		fmt.Sprintf("cases axis: 0 .. %s", formatCount(vm.CasesDomainMax)),
		fmt.Sprintf("deaths axis: 0 .. %s", formatCount(vm.DeathsDomainMax)),
		"",
	)
	for _, c := range vm.Countries {
		s := vm.Series(c)
		if len(s) == 0 {
			lines = append(lines, c+": no data in window")
			continue
		}
		last := s[len(s)-1]
		lines = append(lines, fmt.Sprintf("%s: %s cases, %s deaths on %s",
			c, formatCount(last.CumulativeCases), formatCount(last.CumulativeDeaths), covid.FormatDate(last.Date)))
	}
	return strings.Join(lines, "\n")
}
