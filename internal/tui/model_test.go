package tui

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"covidchart/internal/covid"
)

func day(s string) time.Time {
	t, err := covid.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func testDataset() *covid.Dataset {
	var recs []covid.Record
	for i := 0; i < 60; i++ {
		d := covid.AddDays(day("2021-01-01"), i)
		recs = append(recs,
			covid.Record{Country: "US", Date: d, CumulativeCases: int64(1000 * (i + 1)), CumulativeDeaths: int64(20 * (i + 1))},
			covid.Record{Country: "FR", Date: d, CumulativeCases: int64(500 * (i + 1)), CumulativeDeaths: int64(9 * (i + 1))},
		)
	}
	return covid.NewDataset(recs)
}

func newModel(t *testing.T, countries ...string) Model {
	t.Helper()
	m, err := New(testDataset(), Options{Countries: countries, StepDays: 7})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestNewRefusesEmptyDataset(t *testing.T) {
	if _, err := New(covid.NewDataset(nil), Options{}); !errors.Is(err, covid.ErrEmptyDataset) {
		t.Fatalf("want ErrEmptyDataset, got %v", err)
	}
}

func TestInitialSelection(t *testing.T) {
	m := newModel(t, "US", "Atlantis")
	if got := m.Selection().Countries(); !reflect.DeepEqual(got, []string{"US"}) {
		t.Fatalf("unknown countries should be dropped, got %v", got)
	}
	start, end := m.Selection().Window()
	if !start.Equal(day("2021-01-01")) || !end.Equal(day("2021-03-01")) {
		t.Fatalf("window should default to the dataset range, got %s..%s", covid.FormatDate(start), covid.FormatDate(end))
	}
}

func TestToggleCountry(t *testing.T) {
	m := newModel(t)
	// the list is alphabetical, so FR is highlighted first
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Selection().Has("FR") {
		t.Fatalf("space should select the highlighted country")
	}
	if m.ViewModel().Empty {
		t.Fatalf("view should have data for FR")
	}
	it := m.countries.SelectedItem().(countryItem)
	if !it.checked || !strings.HasPrefix(it.Title(), "[x]") {
		t.Fatalf("checklist not updated: %q", it.Title())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Selection().Has("FR") {
		t.Fatalf("second toggle should deselect")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace}, runes("c"))
	if m.Selection().Len() != 0 {
		t.Fatalf("c should clear the selection")
	}
}

func TestSlidersClamp(t *testing.T) {
	m := newModel(t, "US")
	m = send(t, m, runes("["))
	if !m.Selection().Start.Equal(day("2021-01-01")) {
		t.Fatalf("start must clamp at the earliest date, got %s", covid.FormatDate(m.Selection().Start))
	}
	m = send(t, m, runes("]"), runes("]"))
	if !m.Selection().Start.Equal(day("2021-01-15")) {
		t.Fatalf("two 7 day steps, got %s", covid.FormatDate(m.Selection().Start))
	}
	m = send(t, m, runes("+"), runes("+"), runes("}"))
	if m.stepDays != 90 || !m.Selection().End.Equal(day("2021-03-01")) {
		t.Fatalf("end must clamp at the latest date, step %d end %s", m.stepDays, covid.FormatDate(m.Selection().End))
	}
	m = send(t, m, runes("{"))
	if !m.Selection().End.Equal(day("2021-01-01")) {
		t.Fatalf("end moved back 90 days should clamp, got %s", covid.FormatDate(m.Selection().End))
	}
	if m.Selection().Valid() || !m.ViewModel().InvalidWindow {
		t.Fatalf("start after end must flag an invalid window")
	}
	if v := m.View(); !strings.Contains(v, emptyMessage) {
		t.Fatalf("empty placeholder not rendered")
	}
	m = send(t, m, runes("r"))
	if !m.Selection().Valid() || m.ViewModel().Empty {
		t.Fatalf("reset should restore the full range")
	}
}

func TestDateEntry(t *testing.T) {
	m := newModel(t, "US")
	m = send(t, m, runes("d"))
	if !m.dateEntry {
		t.Fatalf("d should open date entry")
	}
	m.input.SetValue("2021-02-01 2021-02-10")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.dateEntry {
		t.Fatalf("enter should close date entry")
	}
	if got := m.ViewModel().Series("US"); len(got) != 10 {
		t.Fatalf("want 10 records in window, got %d", len(got))
	}

	m = send(t, m, runes("d"))
	m.input.SetValue("garbage")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.dateEntry || !strings.Contains(m.status, "bad date") {
		t.Fatalf("bad input should keep the entry open, status %q", m.status)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.dateEntry {
		t.Fatalf("esc should cancel")
	}
}

func TestParseWindow(t *testing.T) {
	cur := covid.NewSelection(day("2021-01-05"), day("2021-01-20"))
	lo, hi := day("2021-01-01"), day("2021-01-31")
	cases := []struct {
		in         string
		start, end string
		err        bool
	}{
		{"2021-01-10 2021-01-12", "2021-01-10", "2021-01-12", false},
		{"2021-01-10..2021-01-12", "2021-01-10", "2021-01-12", false},
		{"- 2021-01-12", "2021-01-05", "2021-01-12", false},
		{"2020-06-01 2022-01-01", "2021-01-01", "2021-01-31", false},
		{"2021-01-10", "2021-01-10", "2021-01-20", false},
		{"", "", "", true},
		{"a b c", "", "", true},
		{"2021-01-10 nope", "", "", true},
	}
	for _, tc := range cases {
		s, e, err := parseWindow(tc.in, cur, lo, hi)
		if tc.err {
			if err == nil {
				t.Fatalf("%q: want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if covid.FormatDate(s) != tc.start || covid.FormatDate(e) != tc.end {
			t.Fatalf("%q: got %s..%s", tc.in, covid.FormatDate(s), covid.FormatDate(e))
		}
	}
}

func TestNextStep(t *testing.T) {
	cases := []struct{ cur, dir, want int }{
		{1, 1, 7}, {7, 1, 30}, {365, 1, 365}, {10, 1, 30},
		{7, -1, 1}, {1, -1, 1}, {10, -1, 7},
	}
	for _, tc := range cases {
		if got := nextStep(tc.cur, tc.dir); got != tc.want {
			t.Fatalf("nextStep(%d, %d) = %d, want %d", tc.cur, tc.dir, got, tc.want)
		}
	}
}

func TestLayerToggles(t *testing.T) {
	m := newModel(t, "US")
	g := m.plot(m.layout())
	if len(m.vertices(g)) != 2 {
		t.Fatalf("want cases and deaths lines")
	}
	m = send(t, m, runes("2"))
	if m.showDeaths || len(m.vertices(g)) != 1 {
		t.Fatalf("2 should hide the deaths layer")
	}
	m = send(t, m, runes("1"))
	if len(m.vertices(g)) != 0 {
		t.Fatalf("all layers hidden")
	}
}

func TestHoverTooltip(t *testing.T) {
	m := newModel(t, "US")
	m = send(t, m, runes("2"))
	g := m.plot(m.layout())
	if !g.ok {
		t.Fatalf("plot should fit in 120x40")
	}
	line := m.vertices(g)[0]
	last := line[len(line)-1]
	m = send(t, m, tea.MouseMsg{X: g.x0 + last.mx/2, Y: g.y0 + last.my/4, Action: tea.MouseActionMotion})
	if !m.hover.found {
		t.Fatalf("hover should find a vertex")
	}
	tip := m.tooltip()
	if !strings.Contains(tip, "US") || !strings.Contains(tip, "60,000") {
		t.Fatalf("tooltip %q", tip)
	}

	m = send(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	if m.hover.found {
		t.Fatalf("hover outside the plot should clear")
	}
}

func TestCursorReadout(t *testing.T) {
	m := newModel(t, "US")
	m = send(t, m, runes("1"), runes("2")) // both layers hidden, no vertices
	g := m.plot(m.layout())
	if !g.ok {
		t.Fatalf("plot should fit in 120x40")
	}
	m = send(t, m, tea.MouseMsg{X: g.x0, Y: g.y0 + g.ph - 1, Action: tea.MouseActionMotion})
	if m.hover.found {
		t.Fatalf("no layer is drawn, nothing to find")
	}
	tip := m.tooltip()
	if !strings.HasPrefix(tip, "2021-01-01 cases ~") {
		t.Fatalf("left edge of the plot should read the first date, got %q", tip)
	}

	m = send(t, m, runes("2"), tea.MouseMsg{X: g.x0 + g.pw - 1, Y: g.y0, Action: tea.MouseActionMotion})
	tip = m.tooltip()
	if !strings.HasPrefix(tip, "2021-03-01 deaths ~") || !strings.Contains(tip, "1,200") {
		t.Fatalf("top right corner should read the last date and the deaths vertex, got %q", tip)
	}
}

// drain runs cmd the way tea.Program does and feeds every message it yields
// back into Update. Commands that block, such as cursor blinks, are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd, depth int) Model {
	t.Helper()
	if cmd == nil || depth > 8 {
		return m
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return m
	}
	switch msg := msg.(type) {
	case nil:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c, depth+1)
		}
		return m
	}
	next, c := m.Update(msg)
	m = next.(Model)
	return drain(t, m, c, depth+1)
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = drain(t, next.(Model), cmd, 0)
	}
	return m
}

func TestFilterThenToggle(t *testing.T) {
	m := newModel(t)
	m = press(t, m, runes("/"), runes("U"), runes("S"))
	if got := len(m.countries.VisibleItems()); got != 1 {
		t.Fatalf("filter US should leave one country, got %d", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.countries.FilterState() != list.FilterApplied {
		t.Fatalf("enter should apply the filter, state %v", m.countries.FilterState())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if got := m.Selection().Countries(); !reflect.DeepEqual(got, []string{"US"}) {
		t.Fatalf("space should select the filtered country, got %v", got)
	}
	visible := m.countries.VisibleItems()
	if len(visible) != 1 || !visible[0].(countryItem).checked {
		t.Fatalf("filtered list after toggle: %v", visible)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := len(m.countries.VisibleItems()); got != 2 {
		t.Fatalf("esc should clear the filter, %d visible", got)
	}
}

func TestOverlays(t *testing.T) {
	m := newModel(t, "US", "FR")
	m = send(t, m, runes("a"))
	if !m.showRecords || len(m.tbl.Rows()) != 120 {
		t.Fatalf("records table: shown=%v rows=%d", m.showRecords, len(m.tbl.Rows()))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showRecords {
		t.Fatalf("esc should close the records table")
	}

	m = send(t, m, runes("i"))
	if !strings.Contains(m.inspectPopup, "US: 60,000 cases") {
		t.Fatalf("inspect popup:\n%s", m.inspectPopup)
	}
	m = send(t, m, runes("i"))
	if m.inspectPopup != "" {
		t.Fatalf("i should close the popup")
	}
}

func TestAllKeysPopup(t *testing.T) {
	m := newModel(t)
	m = send(t, m, runes("?"))
	for _, want := range []string{"all keys", "export png", "toggle country"} {
		if !strings.Contains(m.inspectPopup, want) {
			t.Fatalf("key list misses %q:\n%s", want, m.inspectPopup)
		}
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inspectPopup != "" {
		t.Fatalf("esc should close the key list")
	}
}

func TestExportRefusesEmptyView(t *testing.T) {
	m := newModel(t)
	next, cmd := m.Update(runes("e"))
	if cmd != nil {
		t.Fatalf("no export command expected for an empty view")
	}
	if !strings.Contains(next.(Model).status, "nothing to export") {
		t.Fatalf("status %q", next.(Model).status)
	}
}

func TestExportHTML(t *testing.T) {
	chdir(t, t.TempDir())
	m := newModel(t, "US")
	_, cmd := m.Update(runes("e"))
	if cmd == nil {
		t.Fatalf("want export command")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("export: %+v", done)
	}
	if _, err := os.Stat(htmlExportPath); err != nil {
		t.Fatalf("html not written: %v", err)
	}
	m = send(t, m, done)
	if !strings.HasPrefix(m.status, "exported") {
		t.Fatalf("status %q", m.status)
	}
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "other.csv")
	csv := "Date_reported,Country,Cumulative_cases,Cumulative_deaths\n2022-05-01,US,10,1\n2022-05-02,DE,20,2\n"
	if err := os.WriteFile(good, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("Date_reported,Country,Cumulative_cases,Cumulative_deaths\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newModel(t, "US", "FR")
	m.loadPath(empty)
	if m.ds.Len() != 120 || !strings.Contains(m.status, "no records") {
		t.Fatalf("empty file must keep the old data, status %q", m.status)
	}

	m.loadPath(good)
	if got := m.Selection().Countries(); !reflect.DeepEqual(got, []string{"US"}) {
		t.Fatalf("only countries present in the new file stay selected, got %v", got)
	}
	if !m.minDate.Equal(day("2022-05-01")) || !m.Selection().End.Equal(day("2022-05-02")) {
		t.Fatalf("window should reset to the new range")
	}
}

func TestBrailleBuf(t *testing.T) {
	b := newBrailleBuf(1, 1)
	b.setPixel(0, 0, "#ff0000")
	b.setPixel(1, 3, "#ff0000")
	b.setPixel(5, 5, "") // outside, ignored
	if got := b.m[0][0]; got != 0x81 {
		t.Fatalf("mask = %#x, want 0x81", got)
	}
	if b.color[0][0] != "#ff0000" {
		t.Fatalf("cell colour = %q", b.color[0][0])
	}
	if got := b.toLines()[0]; !strings.Contains(got, string(rune(0x2881))) {
		t.Fatalf("rendered row %q", got)
	}

	d := newBrailleBuf(4, 1)
	d.drawLineMicro(0, 0, 7, 0, &pen{dash: 2})
	want := []uint8{0x09, 0, 0x09, 0}
	if !reflect.DeepEqual(d.m[0], want) {
		t.Fatalf("dashed line masks = %#v, want %#v", d.m[0], want)
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(1234567); got != "1,234,567" {
		t.Fatalf("formatCount = %q", got)
	}
	cases := map[float64]string{0: "0", 950: "950", 20000: "20k", 3400000: "3.4M", 0.2: "0.2"}
	for v, want := range cases {
		if got := compactCount(v); got != want {
			t.Fatalf("compactCount(%v) = %q, want %q", v, got, want)
		}
	}
}
