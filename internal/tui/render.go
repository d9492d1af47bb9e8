package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"covidchart/internal/covid"
	"covidchart/internal/export"
)

const (
	emptyMessage = "No data available for the selected criteria."
	deathsDash   = 2
)

// plotGeometry places the braille plot inside the chart area. Rows: title,
// legend, ph plot rows, x axis, x labels. Columns: left labels, axis, pw
// plot cells, axis, right labels.
type plotGeometry struct {
	x0, y0 int // screen cell of the plot's top-left corner
	pw, ph int
	lw, rw int
	sc     covid.Scales
	ok     bool
}

const plotChromeRows = 4

func yTickCount(ph int) int { return max(2, ph/3) }

func (m Model) plot(l layout) plotGeometry {
	g := plotGeometry{x0: l.chartX, y0: l.chartY + 2}
	if m.vm.Empty {
		return g
	}
	g.ph = l.chartH - plotChromeRows
	n := yTickCount(g.ph)
	g.lw = labelWidth(covid.LinearScale{D1: float64(m.vm.DomainMax(covid.Cases))}.Ticks(n))
	g.rw = labelWidth(covid.LinearScale{D1: float64(m.vm.DomainMax(covid.Deaths))}.Ticks(n))
	g.pw = l.chartW - g.lw - g.rw - 2
	if g.pw < 4 || g.ph < 2 {
		return g
	}
	g.x0 += g.lw + 1
	g.sc, g.ok = covid.ScalesFor(m.vm, float64(g.pw*2-1), float64(g.ph*4-1))
	return g
}

func labelWidth(ticks []float64) int {
	w := 1
	for _, t := range ticks {
		w = max(w, len(compactCount(t)))
	}
	return w + 1
}

func micro(v float64) int { return int(math.Round(v)) }

// vertex is one plotted record in micro-pixel coordinates.
type vertex struct {
	mx, my  int
	country string
	metric  covid.Metric
	rec     covid.Record
	color   string
}

// vertices projects every visible record of the view model. Series come in
// selection order so colours stay stable as countries are toggled.
func (m Model) vertices(g plotGeometry) [][]vertex {
	if !g.ok {
		return nil
	}
	var out [][]vertex
	for i, country := range m.vm.Countries {
		series := m.vm.Series(country)
		if len(series) == 0 {
			continue
		}
		color := export.SeriesColor(i)
		for _, mt := range []covid.Metric{covid.Cases, covid.Deaths} {
			if (mt == covid.Cases && !m.showCases) || (mt == covid.Deaths && !m.showDeaths) {
				continue
			}
			c := color
			if mt == covid.Deaths {
				c = export.DeathsColor(color)
			}
			vs := make([]vertex, 0, len(series))
			for _, r := range series {
				vs = append(vs, vertex{
					mx:      micro(g.sc.X.Map(r.Date)),
					my:      micro(g.sc.Y(mt).Map(float64(mt.Value(r)))),
					country: country,
					metric:  mt,
					rec:     r,
					color:   c,
				})
			}
			out = append(out, vs)
		}
	}
	return out
}

// nearestVertex finds the plotted vertex closest to the micro-pixel (hx, hy).
func (m Model) nearestVertex(g plotGeometry, hx, hy int) (vertex, bool) {
	best := math.MaxInt
	var bv vertex
	for _, line := range m.vertices(g) {
		for _, v := range line {
			dx, dy := v.mx-hx, v.my-hy
			if d := dx*dx + dy*dy; d < best {
				best, bv = d, v
			}
		}
	}
	return bv, best != math.MaxInt
}

func (m Model) renderChart(l layout) string {
	w, h := l.chartW, l.chartH
	if m.vm.Empty {
		msg := emptyMessage
		if m.vm.InvalidWindow {
			msg += "\n" + warnStyle.Render("The start date is after the end date.")
		} else if m.sel.Len() == 0 {
			msg += "\n" + dimStyle.Render("Select countries in the sidebar with space.")
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg)
	}
	g := m.plot(l)
	if !g.ok {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render("window too small"))
	}

	br := newBrailleBuf(g.pw, g.ph)
	for _, line := range m.vertices(g) {
		p := &pen{color: line[0].color}
		if line[0].metric == covid.Deaths {
			p.dash = deathsDash
		}
		if len(line) == 1 {
			br.setPixel(line[0].mx, line[0].my, p.color)
			continue
		}
		for i := 1; i < len(line); i++ {
			br.drawLineMicro(line[i-1].mx, line[i-1].my, line[i].mx, line[i].my, p)
		}
	}
	if m.hover.found {
		br.mark(m.hover.v.mx/2, m.hover.v.my/4)
	}
	plotRows := br.toLines()

	rows := make([]string, 0, h)
	rows = append(rows, fitLeft(titleStyle.Render(" Cumulative cases (solid, left axis) and deaths (dashed, right axis)"), w))
	rows = append(rows, fitLeft(m.renderLegend(), w))

	n := yTickCount(g.ph)
	left := tickRows(g.sc.YCases, n)
	right := tickRows(g.sc.YDeaths, n)
	for y := 0; y < g.ph; y++ {
		ll, rl := "", ""
		lAxis, rAxis := "│", "│"
		if s, ok := left[y]; ok && m.showCases {
			ll, lAxis = s, "┤"
		}
		if s, ok := right[y]; ok && m.showDeaths {
			rl, rAxis = s, "├"
		}
		rows = append(rows, fitRight(ll, g.lw)+dimStyle.Render(lAxis)+plotRows[y]+dimStyle.Render(rAxis)+rl)
	}

	axis, labels := m.xAxis(g)
	rows = append(rows, strings.Repeat(" ", g.lw)+dimStyle.Render(axis))
	rows = append(rows, strings.Repeat(" ", g.lw+1)+labels)
	return strings.Join(rows, "\n")
}

// tickRows maps plot rows to the label of the y tick falling on them.
func tickRows(s covid.LinearScale, n int) map[int]string {
	out := map[int]string{}
	for _, t := range s.Ticks(n) {
		out[micro(s.Map(t))/4] = compactCount(t)
	}
	return out
}

func (m Model) xAxis(g plotGeometry) (string, string) {
	axis := []rune("└" + strings.Repeat("─", g.pw) + "┘")
	labels := []rune(strings.Repeat(" ", g.pw+1))
	format := "Jan 2006"
	if covid.DaysBetween(m.vm.Start, m.vm.End) <= 62 {
		format = "02 Jan"
	}
	next := 0
	for _, t := range g.sc.X.Ticks(max(2, g.pw/12)) {
		col := micro(g.sc.X.Map(t)) / 2
		if col < 0 || col >= g.pw {
			continue
		}
		axis[col+1] = '┬'
		lbl := []rune(t.Format(format))
		if col < next || col+len(lbl) > len(labels) {
			continue
		}
		copy(labels[col:], lbl)
		next = col + len(lbl) + 1
	}
	return string(axis), dimStyle.Render(string(labels))
}

func (m Model) renderLegend() string {
	var parts []string
	for i, c := range m.vm.Countries {
		color := export.SeriesColor(i)
		entry := colorStyle(color).Render("━ " + c)
		if m.showDeaths {
			entry += " " + colorStyle(export.DeathsColor(color)).Render("┅")
		}
		if len(m.vm.Series(c)) == 0 {
			entry += dimStyle.Render(" (no data)")
		}
		parts = append(parts, entry)
	}
	var layers []string
	if !m.showCases {
		layers = append(layers, "cases hidden")
	}
	if !m.showDeaths {
		layers = append(layers, "deaths hidden")
	}
	out := " " + strings.Join(parts, "  ")
	if len(layers) > 0 {
		out += dimStyle.Render("  [" + strings.Join(layers, ", ") + "]")
	}
	return out
}

// tooltip reads out the date and axis value under the mouse, followed by the
// nearest plotted vertex.
func (m Model) tooltip() string {
	h := m.hover
	if !h.in {
		return ""
	}
	axis := "cases"
	if h.metric == covid.Deaths {
		axis = "deaths"
	}
	out := covid.FormatDate(h.at) + " " + axis + " ~" + compactCount(h.value)
	if h.found {
		v := h.v
		out += "  │  " + v.country + "  " + covid.FormatDate(v.rec.Date) + "  " + v.metric.String() + " " + formatCount(v.metric.Value(v.rec))
	}
	return out
}
