package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"covidchart/internal/covid"
)

var stepSizes = []int{1, 7, 30, 90, 365}

// nextStep returns the next larger (dir > 0) or smaller step size. A custom
// configured step snaps onto the preset list.
func nextStep(cur, dir int) int {
	if dir > 0 {
		for _, s := range stepSizes {
			if s > cur {
				return s
			}
		}
		return stepSizes[len(stepSizes)-1]
	}
	for i := len(stepSizes) - 1; i >= 0; i-- {
		if stepSizes[i] < cur {
			return stepSizes[i]
		}
	}
	return stepSizes[0]
}

// moveStart shifts the start handle by n steps, clamped to the dataset
// range. The handles are independent, so start may pass end.
func (m *Model) moveStart(n int) {
	start := covid.ClampDate(covid.AddDays(m.sel.Start, n*m.stepDays), m.minDate, m.maxDate)
	m.setSelection(m.sel.WithWindow(start, m.sel.End))
	m.status = "start " + covid.FormatDate(start)
}

func (m *Model) moveEnd(n int) {
	end := covid.ClampDate(covid.AddDays(m.sel.End, n*m.stepDays), m.minDate, m.maxDate)
	m.setSelection(m.sel.WithWindow(m.sel.Start, end))
	m.status = "end " + covid.FormatDate(end)
}

func (m *Model) resetWindow() {
	m.setSelection(m.sel.WithWindow(m.minDate, m.maxDate))
	m.status = "window reset to full range"
}

// parseWindow reads "START END" or "START..END"; either side may be "-" to
// keep the current value. Dates are clamped to [min, max].
func parseWindow(s string, cur covid.Selection, min, max time.Time) (time.Time, time.Time, error) {
	s = strings.ReplaceAll(s, "..", " ")
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("want START END, got %q", s)
	}
	start, end := cur.Start, cur.End
	parse := func(v string, into *time.Time) error {
		if v == "-" {
			return nil
		}
		d, err := covid.ParseDate(v)
		if err != nil {
			return fmt.Errorf("bad date %q", v)
		}
		*into = covid.ClampDate(d, min, max)
		return nil
	}
	if err := parse(fields[0], &start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(fields) == 2 {
		if err := parse(fields[1], &end); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

// sliderPos maps d onto a track of w cells.
func (m Model) sliderPos(d time.Time, w int) int {
	total := covid.DaysBetween(m.minDate, m.maxDate)
	if total <= 0 || w <= 1 {
		return 0
	}
	return covid.DaysBetween(m.minDate, d) * (w - 1) / total
}

// renderSliders draws the two handles on one track plus a label row.
func (m Model) renderSliders(width int) string {
	label := func(name string, d time.Time) string {
		return name + " " + covid.FormatDate(d)
	}
	left := label("start", m.sel.Start)
	right := label("end", m.sel.End)
	track := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if track < 10 {
		track = 10
	}

	cells := []rune(strings.Repeat("─", track))
	s := m.sliderPos(m.sel.Start, track)
	e := m.sliderPos(m.sel.End, track)
	if s <= e {
		for i := s; i <= e; i++ {
			cells[i] = '━'
		}
	}
	var b strings.Builder
	for i, r := range cells {
		switch {
		case i == s && i == e:
			b.WriteString(handleStyle.Render("◆"))
		case i == s:
			b.WriteString(handleStyle.Render("◀"))
		case i == e:
			b.WriteString(handleStyle.Render("▶"))
		default:
			b.WriteRune(r)
		}
	}

	startLbl := left
	if !m.sel.Valid() {
		startLbl = warnStyle.Render(left)
	}
	top := startLbl + "  " + b.String() + "  " + right
	bottom := dimStyle.Render(fmt.Sprintf(" range %s .. %s   step %dd   %d days selected",
		covid.FormatDate(m.minDate), covid.FormatDate(m.maxDate), m.stepDays, max(0, covid.DaysBetween(m.sel.Start, m.sel.End)+1)))
	if m.dateEntry {
		bottom = " dates: " + m.input.View()
	}
	return top + "\n" + bottom
}
