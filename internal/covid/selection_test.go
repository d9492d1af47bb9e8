package covid

import (
	"reflect"
	"testing"
)

func TestSelectionSnapshots(t *testing.T) {
	base := NewSelection(day("2021-01-01"), day("2021-01-31"), "US", "FR", "US")
	if base.Len() != 2 {
		t.Fatalf("duplicates should collapse, got %v", base.Countries())
	}

	toggled := base.Toggle("DE")
	if base.Has("DE") {
		t.Fatalf("Toggle mutated the receiver")
	}
	if !reflect.DeepEqual(toggled.Countries(), []string{"US", "FR", "DE"}) {
		t.Fatalf("unexpected order %v", toggled.Countries())
	}

	removed := toggled.Toggle("US")
	if !reflect.DeepEqual(removed.Countries(), []string{"FR", "DE"}) {
		t.Fatalf("unexpected order %v", removed.Countries())
	}
	if !toggled.Has("US") {
		t.Fatalf("Without mutated the receiver")
	}

	moved := removed.WithWindow(day("2021-02-01"), day("2021-02-02"))
	if !removed.Start.Equal(day("2021-01-01")) || !moved.Start.Equal(day("2021-02-01")) {
		t.Fatalf("WithWindow must return a new snapshot")
	}
	if cleared := moved.Clear(); cleared.Len() != 0 || !cleared.End.Equal(day("2021-02-02")) {
		t.Fatalf("Clear should keep the window")
	}
}

func TestSelectionAppendDoesNotAlias(t *testing.T) {
	a := NewSelection(day("2021-01-01"), day("2021-01-02"), "A")
	b := a.With("B")
	c := a.With("C")
	if !reflect.DeepEqual(b.Countries(), []string{"A", "B"}) || !reflect.DeepEqual(c.Countries(), []string{"A", "C"}) {
		t.Fatalf("snapshots share storage: b=%v c=%v", b.Countries(), c.Countries())
	}
}

func TestSelectionContains(t *testing.T) {
	sel := NewSelection(day("2021-01-01"), day("2021-01-03"), "A")
	cases := []struct {
		rec  Record
		want bool
	}{
		{Record{Country: "A", Date: day("2021-01-01")}, true},
		{Record{Country: "A", Date: day("2021-01-03")}, true},
		{Record{Country: "A", Date: day("2020-12-31")}, false},
		{Record{Country: "A", Date: day("2021-01-04")}, false},
		{Record{Country: "B", Date: day("2021-01-02")}, false},
	}
	for _, tc := range cases {
		if got := sel.Contains(tc.rec); got != tc.want {
			t.Fatalf("Contains(%s %s) = %v", tc.rec.Country, FormatDate(tc.rec.Date), got)
		}
	}
	if sel.WithWindow(day("2021-01-03"), day("2021-01-01")).Valid() {
		t.Fatalf("inverted window reported valid")
	}
}

func TestDateHelpers(t *testing.T) {
	if _, err := ParseDate("2021-13-01"); err == nil {
		t.Fatalf("want error for month 13")
	}
	d := day("2021-01-31")
	if FormatDate(AddDays(d, 1)) != "2021-02-01" {
		t.Fatalf("AddDays crossed month wrong")
	}
	if DaysBetween(day("2021-01-01"), day("2021-03-01")) != 59 {
		t.Fatalf("DaysBetween wrong")
	}
	if got := ClampDate(day("2019-01-01"), day("2020-01-01"), day("2020-12-31")); FormatDate(got) != "2020-01-01" {
		t.Fatalf("ClampDate low = %s", FormatDate(got))
	}
}
