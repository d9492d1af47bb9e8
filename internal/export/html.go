package export

import (
	"errors"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"covidchart/internal/covid"
)

// ErrEmptyView is returned when there is nothing to draw.
var ErrEmptyView = errors.New("export: no data available for the selected criteria")

// HTML renders vm as a self-contained ECharts page: one solid cases line and
// one dashed deaths line per country, deaths on the right-hand axis.
func HTML(w io.Writer, vm covid.ViewModel, title string) error {
	if vm.Empty {
		return ErrEmptyView
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: covid.FormatDate(vm.Start) + " to " + covid.FormatDate(vm.End),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time", Min: covid.FormatDate(vm.Start), Max: covid.FormatDate(vm.End)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative cases", Type: "value", Min: 0, Max: vm.CasesDomainMax}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Cumulative deaths", Type: "value", Min: 0, Max: vm.DeathsDomainMax})

	for i, country := range vm.Countries {
		series := vm.Series(country)
		if len(series) == 0 {
			continue
		}
		color := SeriesColor(i)
		shade := DeathsColor(color)
		line.AddSeries(country+" cases", lineData(series, covid.Cases),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		)
		line.AddSeries(country+" deaths", lineData(series, covid.Deaths),
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: shade, Width: 2, Type: "dashed"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: shade}),
		)
	}
	return line.Render(w)
}

func lineData(series []covid.Record, mt covid.Metric) []opts.LineData {
	items := make([]opts.LineData, 0, len(series))
	for _, r := range series {
		items = append(items, opts.LineData{Value: []interface{}{covid.FormatDate(r.Date), mt.Value(r)}})
	}
	return items
}
