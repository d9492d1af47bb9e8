package covid

import (
	"sort"
	"time"
)

// ViewModel is the render-ready result of filtering a Dataset with a
// Selection.
type ViewModel struct {
	// Empty is set when no record matched; the domain maxima are then
	// meaningless and renderers show a placeholder instead of scales.
	Empty bool `json:"empty"`
	// InvalidWindow is set when End is before Start.
	InvalidWindow bool `json:"invalid_window,omitempty"`

	CasesDomainMax  int64 `json:"cases_domain_max"`
	DeathsDomainMax int64 `json:"deaths_domain_max"`

	// Start and End are the x domain, equal to the selection window.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// Countries lists the selected countries in selection order.
	Countries       []string            `json:"countries"`
	SeriesByCountry map[string][]Record `json:"series_by_country"`
}

// Series returns the records for country, nil if it is not selected.
func (vm ViewModel) Series(country string) []Record {
	return vm.SeriesByCountry[country]
}

// Matched counts the records across all series.
func (vm ViewModel) Matched() int {
	n := 0
	for _, s := range vm.SeriesByCountry {
		n += len(s)
	}
	return n
}

// DomainMax returns the upper bound of the value scale for mt.
func (vm ViewModel) DomainMax(mt Metric) int64 {
	if mt == Deaths {
		return vm.DeathsDomainMax
	}
	return vm.CasesDomainMax
}

// Build filters ds by sel and computes the series and scale domains.
// It has no side effects; identical inputs give equal results.
//
// Every selected country gets a key in SeriesByCountry, with an empty slice
// when none of its records fall inside the window. Each series is ordered by
// date, keeping dataset order among equal dates.
func Build(ds *Dataset, sel Selection) ViewModel {
	countries := sel.Countries()
	vm := ViewModel{
		Start:           sel.Start,
		End:             sel.End,
		Countries:       countries,
		SeriesByCountry: make(map[string][]Record, len(countries)),
		InvalidWindow:   !sel.Valid(),
	}
	for _, c := range countries {
		vm.SeriesByCountry[c] = []Record{}
	}

	matched := 0
	if sel.Valid() && len(countries) > 0 {
		for _, r := range ds.Records() {
			if r.Date.Before(sel.Start) || r.Date.After(sel.End) {
				continue
			}
			series, ok := vm.SeriesByCountry[r.Country]
			if !ok {
				continue
			}
			vm.SeriesByCountry[r.Country] = append(series, r)
			if matched == 0 || r.CumulativeCases > vm.CasesDomainMax {
				vm.CasesDomainMax = r.CumulativeCases
			}
			if matched == 0 || r.CumulativeDeaths > vm.DeathsDomainMax {
				vm.DeathsDomainMax = r.CumulativeDeaths
			}
			matched++
		}
	}

	if matched == 0 {
		vm.Empty = true
		vm.CasesDomainMax, vm.DeathsDomainMax = 0, 0
		return vm
	}
	for _, series := range vm.SeriesByCountry {
		sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	}
	return vm
}
