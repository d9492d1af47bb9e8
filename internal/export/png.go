package export

import (
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"covidchart/internal/covid"
)

func seriesStyle(hex string, dashed bool) chart.Style {
	st := chart.Style{
		StrokeColor: drawing.ColorFromHex(hex[1:]),
		StrokeWidth: 2,
	}
	if dashed {
		st.StrokeDashArray = []float64{6, 4}
	}
	return st
}

// PNG renders vm with go-chart at width x height pixels. Cases use the left
// axis, deaths the secondary axis on the right.
func PNG(w io.Writer, vm covid.ViewModel, title string, width, height int) error {
	if vm.Empty {
		return ErrEmptyView
	}

	var series []chart.Series
	for i, country := range vm.Countries {
		recs := vm.Series(country)
		if len(recs) == 0 {
			continue
		}
		times := make([]time.Time, len(recs))
		cases := make([]float64, len(recs))
		deaths := make([]float64, len(recs))
		for j, r := range recs {
			times[j] = r.Date
			cases[j] = float64(r.CumulativeCases)
			deaths[j] = float64(r.CumulativeDeaths)
		}
		// a lone point has no segment to stroke; repeat it so it still shows
		if len(recs) == 1 {
			times = append(times, times[0])
			cases = append(cases, cases[0])
			deaths = append(deaths, deaths[0])
		}
		color := SeriesColor(i)
		series = append(series,
			chart.TimeSeries{
				Name:    country + " cases",
				XValues: times,
				YValues: cases,
				Style:   seriesStyle(color, false),
			},
			chart.TimeSeries{
				Name:    country + " deaths",
				XValues: times,
				YValues: deaths,
				YAxis:   chart.YAxisSecondary,
				Style:   seriesStyle(DeathsColor(color), true),
			},
		)
	}

	start, end := vm.Start, vm.End
	if !end.After(start) {
		end = covid.AddDays(start, 1)
	}
	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(start), Max: chart.TimeToFloat64(end)},
		},
		YAxis: chart.YAxis{
			Name:           "Cumulative cases",
			ValueFormatter: chart.IntValueFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: domainMax(vm.CasesDomainMax)},
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Cumulative deaths",
			ValueFormatter: chart.IntValueFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: domainMax(vm.DeathsDomainMax)},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// go-chart rejects zero-width ranges.
func domainMax(v int64) float64 {
	if v <= 0 {
		return 1
	}
	return float64(v)
}
