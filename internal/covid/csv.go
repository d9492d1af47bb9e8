package covid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Source column names. Matching is case-insensitive.
const (
	ColCountry = "Country"
	ColDate    = "Date_reported"
	ColCases   = "Cumulative_cases"
	ColDeaths  = "Cumulative_deaths"
)

// LoadOptions controls the malformed row policy.
// By default the first malformed row aborts the load.
type LoadOptions struct {
	SkipMalformed bool
}

type columns struct {
	country, date, cases, deaths int
}

// equalFoldTrim compares a header cell against a column name, ignoring
// case, surrounding spaces and a UTF-8 BOM.
func equalFoldTrim(h, name string) bool {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	return strings.EqualFold(h, name)
}

func findColumns(header []string) (columns, error) {
	c := columns{-1, -1, -1, -1}
	for i, h := range header {
		switch {
		case equalFoldTrim(h, ColCountry):
			if c.country == -1 {
				c.country = i
			}
		case equalFoldTrim(h, ColDate):
			if c.date == -1 {
				c.date = i
			}
		case equalFoldTrim(h, ColCases):
			if c.cases == -1 {
				c.cases = i
			}
		case equalFoldTrim(h, ColDeaths):
			if c.deaths == -1 {
				c.deaths = i
			}
		}
	}
	for _, need := range []struct {
		idx  int
		name string
	}{{c.country, ColCountry}, {c.date, ColDate}, {c.cases, ColCases}, {c.deaths, ColDeaths}} {
		if need.idx == -1 {
			return c, &MissingColumnError{Column: need.name}
		}
	}
	return c, nil
}

func (c columns) width() int {
	return max(c.country, c.date, c.cases, c.deaths) + 1
}

// parseCount accepts base-10 non-negative integers only, so no row can
// carry a NaN-like value into the dataset.
func parseCount(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.New("negative count")
	}
	return v, nil
}

func parseRow(c columns, row []string, line int) (Record, error) {
	if len(row) < c.width() {
		return Record{}, &ParseError{Line: line, Column: "*", Value: strings.Join(row, ","), Err: fmt.Errorf("want at least %d fields, got %d", c.width(), len(row))}
	}
	country := strings.TrimSpace(row[c.country])
	if country == "" {
		return Record{}, &ParseError{Line: line, Column: ColCountry, Value: row[c.country], Err: errors.New("empty country")}
	}
	date, err := ParseDate(row[c.date])
	if err != nil {
		return Record{}, &ParseError{Line: line, Column: ColDate, Value: row[c.date], Err: err}
	}
	cases, err := parseCount(row[c.cases])
	if err != nil {
		return Record{}, &ParseError{Line: line, Column: ColCases, Value: row[c.cases], Err: err}
	}
	deaths, err := parseCount(row[c.deaths])
	if err != nil {
		return Record{}, &ParseError{Line: line, Column: ColDeaths, Value: row[c.deaths], Err: err}
	}
	return Record{Country: country, Date: date, CumulativeCases: cases, CumulativeDeaths: deaths}, nil
}

// ParseRows converts raw table rows into a Dataset. header names the
// columns of every row; rows excludes the header.
func ParseRows(header []string, rows [][]string, opts LoadOptions) (*Dataset, error) {
	cols, err := findColumns(header)
	if err != nil {
		return nil, err
	}
	recs := make([]Record, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		rec, err := parseRow(cols, row, i+2)
		if err != nil {
			if !opts.SkipMalformed {
				return nil, err
			}
			skipped++
			logrus.WithError(err).Warn("skipping malformed row")
			continue
		}
		recs = append(recs, rec)
	}
	return newDataset(recs, skipped), nil
}

// Read parses CSV from r. The first record is the header.
func Read(r io.Reader, opts LoadOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("csv: no header row")
	}
	return ParseRows(recs[0], recs[1:], opts)
}

// LoadCSV reads a CSV file with Country, Date_reported, Cumulative_cases
// and Cumulative_deaths columns.
func LoadCSV(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

// LoadFile dispatches on the file extension.
func LoadFile(path string, opts LoadOptions) (*Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(path, opts)
	case ".json":
		return LoadJSON(path, opts)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (want .csv or .json)", ext)
	}
}
