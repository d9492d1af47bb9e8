package covid

import (
	"errors"
	"fmt"
	"time"
)

// Record is one (country, date, cases, deaths) observation.
type Record struct {
	Country          string    `json:"country"`
	Date             time.Time `json:"date"`
	CumulativeCases  int64     `json:"cumulative_cases"`
	CumulativeDeaths int64     `json:"cumulative_deaths"`
}

// Metric selects one of the two plotted values of a Record.
type Metric int

const (
	Cases Metric = iota
	Deaths
)

func (mt Metric) String() string {
	if mt == Deaths {
		return "Cumulative deaths"
	}
	return "Cumulative cases"
}

// Value returns the metric's value for r.
func (mt Metric) Value(r Record) int64 {
	if mt == Deaths {
		return r.CumulativeDeaths
	}
	return r.CumulativeCases
}

var (
	ErrEmptyDataset  = errors.New("dataset is empty")
	ErrParse         = errors.New("malformed row")
	ErrMissingColumn = errors.New("required column not found")
)

// ParseError reports a row that could not be converted into a Record.
// Line is 1-based and counts the header.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// MissingColumnError names the header column that is absent.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingColumn, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
