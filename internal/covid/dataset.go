package covid

import (
	"sort"
	"time"
)

// Dataset is the immutable, ordered collection of records produced by a
// load. It is safe for concurrent readers; nothing mutates it after
// construction.
type Dataset struct {
	records   []Record
	countries map[string]struct{}
	sorted    []string
	minDate   time.Time
	maxDate   time.Time
	skipped   int
}

// NewDataset builds a Dataset from already parsed records. The slice is
// copied.
func NewDataset(recs []Record) *Dataset {
	cp := make([]Record, len(recs))
	copy(cp, recs)
	return newDataset(cp, 0)
}

func newDataset(recs []Record, skipped int) *Dataset {
	ds := &Dataset{records: recs, countries: make(map[string]struct{}), skipped: skipped}
	for i, r := range recs {
		ds.countries[r.Country] = struct{}{}
		if i == 0 {
			ds.minDate, ds.maxDate = r.Date, r.Date
			continue
		}
		if r.Date.Before(ds.minDate) {
			ds.minDate = r.Date
		}
		if r.Date.After(ds.maxDate) {
			ds.maxDate = r.Date
		}
	}
	ds.sorted = make([]string, 0, len(ds.countries))
	for c := range ds.countries {
		ds.sorted = append(ds.sorted, c)
	}
	sort.Strings(ds.sorted)
	return ds
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.records)
}

// Records exposes the underlying rows in load order. Callers must not
// modify the returned slice.
func (ds *Dataset) Records() []Record {
	if ds == nil {
		return nil
	}
	return ds.records
}

// Skipped reports how many malformed rows were dropped during load.
func (ds *Dataset) Skipped() int {
	if ds == nil {
		return 0
	}
	return ds.skipped
}

// DateRange returns the earliest and latest record date.
func (ds *Dataset) DateRange() (min, max time.Time, err error) {
	if ds.Len() == 0 {
		return time.Time{}, time.Time{}, ErrEmptyDataset
	}
	return ds.minDate, ds.maxDate, nil
}

// DistinctCountries returns the set of country names. The map is a copy.
func (ds *Dataset) DistinctCountries() map[string]struct{} {
	cs := ds.SortedCountries()
	out := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		out[c] = struct{}{}
	}
	return out
}

// SortedCountries returns the country names in alphabetical order.
func (ds *Dataset) SortedCountries() []string {
	if ds == nil {
		return nil
	}
	out := make([]string, len(ds.sorted))
	copy(out, ds.sorted)
	return out
}

// HasCountry reports whether any record belongs to country.
func (ds *Dataset) HasCountry(country string) bool {
	if ds == nil {
		return false
	}
	_, ok := ds.countries[country]
	return ok
}

// FullSelection selects countries over the whole date range of ds.
func (ds *Dataset) FullSelection(countries ...string) (Selection, error) {
	min, max, err := ds.DateRange()
	if err != nil {
		return Selection{}, err
	}
	return NewSelection(min, max, countries...), nil
}
