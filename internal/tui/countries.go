package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type countryItem struct {
	name    string
	checked bool
}

func (c countryItem) Title() string {
	if c.checked {
		return "[x] " + c.name
	}
	return "[ ] " + c.name
}
func (c countryItem) Description() string { return "" }
func (c countryItem) FilterValue() string { return c.name }

// syncCountryItems rebuilds the checklist from the dataset and the current
// selection. Check marks therefore survive filtering.
func (m *Model) syncCountryItems() tea.Cmd {
	names := m.ds.SortedCountries()
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = countryItem{name: n, checked: m.sel.Has(n)}
	}
	return m.countries.SetItems(items)
}

// toggleCurrent flips the highlighted country in or out of the selection.
func (m *Model) toggleCurrent() tea.Cmd {
	it, ok := m.countries.SelectedItem().(countryItem)
	if !ok {
		return nil
	}
	m.setSelection(m.sel.Toggle(it.name))
	if m.sel.Has(it.name) {
		m.status = "selected " + it.name
	} else {
		m.status = "deselected " + it.name
	}
	return m.syncCountryItems()
}
