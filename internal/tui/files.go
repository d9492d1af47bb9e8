package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/sirupsen/logrus"

	"covidchart/internal/covid"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".csv" || ext == ".json" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.files.SetItems(items)
	if len(items) == 0 {
		m.status = "no .csv or .json files in " + m.cwd
	}
}

// loadPath replaces the dataset with the file at p. Selected countries that
// exist in the new data stay selected and the window resets to its range.
// On failure the current data is kept.
func (m *Model) loadPath(p string) {
	ds, err := covid.LoadFile(p, m.opts.Load)
	if err == nil {
		_, _, err = ds.DateRange()
	}
	if err != nil {
		if errors.Is(err, covid.ErrEmptyDataset) {
			m.status = "load error: " + filepath.Base(p) + " has no records"
		} else {
			m.status = "load error: " + err.Error()
		}
		logrus.WithError(err).WithField("path", p).Error("load dataset")
		return
	}
	first, last, _ := ds.DateRange()

	var keep []string
	for _, c := range m.sel.Countries() {
		if ds.HasCountry(c) {
			keep = append(keep, c)
		}
	}
	m.ds, m.path = ds, p
	m.minDate, m.maxDate = first, last
	m.setSelection(covid.NewSelection(first, last, keep...))
	m.syncCountryItems()
	m.status = "loaded: " + filepath.Base(p) + fmt.Sprintf("  records=%d countries=%d", ds.Len(), len(ds.SortedCountries()))
	if ds.Skipped() > 0 {
		m.status += fmt.Sprintf(" skipped=%d", ds.Skipped())
	}
	logrus.WithFields(logrus.Fields{
		"path":    p,
		"records": ds.Len(),
		"skipped": ds.Skipped(),
	}).Info("dataset loaded")
}
