package covid

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// LoadJSON reads a JSON array of row objects keyed by the CSV column names,
// e.g. [{"Country":"France","Date_reported":"2021-01-01",...}].
// Numeric fields may be JSON numbers or strings.
func LoadJSON(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := ReadJSON(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

// ReadJSON flattens the objects in r into header + rows and hands them to
// ParseRows, so both formats share one parse policy.
func ReadJSON(r io.Reader, opts LoadOptions) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return NewDataset(nil), nil
	}
	header := []string{ColCountry, ColDate, ColCases, ColDeaths}
	// keys are matched case-insensitively, like CSV headers
	keys := make([]string, len(header))
	for i, want := range header {
		for k := range raw[0] {
			if equalFoldTrim(k, want) {
				keys[i] = k
				break
			}
		}
		if keys[i] == "" {
			return nil, &MissingColumnError{Column: want}
		}
	}
	rows := make([][]string, 0, len(raw))
	for _, obj := range raw {
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i] = jsonCell(obj[k])
		}
		rows = append(rows, row)
	}
	return ParseRows(header, rows, opts)
}

func jsonCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
