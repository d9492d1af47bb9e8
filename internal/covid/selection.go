package covid

import "time"

// Selection is the user controlled filter: an ordered set of countries and
// an inclusive date window. It is a value type; every change returns a new
// snapshot and leaves the receiver untouched, so a single owner (the UI
// loop, or one HTTP request) can hand copies to Build freely.
type Selection struct {
	countries []string
	Start     time.Time
	End       time.Time
}

// NewSelection returns a selection of countries over [start, end].
// Duplicate names are kept once, first occurrence wins the position.
func NewSelection(start, end time.Time, countries ...string) Selection {
	s := Selection{Start: start, End: end}
	for _, c := range countries {
		if !s.Has(c) {
			s.countries = append(s.countries, c)
		}
	}
	return s
}

// Has reports whether country is selected.
func (s Selection) Has(country string) bool {
	for _, c := range s.countries {
		if c == country {
			return true
		}
	}
	return false
}

// Countries returns the selected countries in selection order.
func (s Selection) Countries() []string {
	out := make([]string, len(s.countries))
	copy(out, s.countries)
	return out
}

func (s Selection) Len() int { return len(s.countries) }

// With appends country if it is not selected yet.
func (s Selection) With(country string) Selection {
	if s.Has(country) {
		return s
	}
	out := s
	out.countries = append(s.Countries(), country)
	return out
}

// Without removes country, keeping the order of the others.
func (s Selection) Without(country string) Selection {
	out := s
	out.countries = make([]string, 0, len(s.countries))
	for _, c := range s.countries {
		if c != country {
			out.countries = append(out.countries, c)
		}
	}
	return out
}

// Toggle flips the membership of country.
func (s Selection) Toggle(country string) Selection {
	if s.Has(country) {
		return s.Without(country)
	}
	return s.With(country)
}

// Clear drops every country and keeps the window.
func (s Selection) Clear() Selection {
	return Selection{Start: s.Start, End: s.End}
}

// WithWindow replaces the date window.
func (s Selection) WithWindow(start, end time.Time) Selection {
	out := s
	out.countries = s.Countries()
	out.Start, out.End = start, end
	return out
}

// Window returns the inclusive date bounds.
func (s Selection) Window() (time.Time, time.Time) { return s.Start, s.End }

// Valid reports whether Start <= End.
func (s Selection) Valid() bool { return !s.End.Before(s.Start) }

// Contains reports whether r passes the filter.
func (s Selection) Contains(r Record) bool {
	if r.Date.Before(s.Start) || r.Date.After(s.End) {
		return false
	}
	return s.Has(r.Country)
}
