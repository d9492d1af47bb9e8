package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"covidchart/internal/covid"
	"covidchart/internal/export"
)

// ChartHandler serves the loaded dataset. The dataset is read-only, so
// concurrent requests share it and each builds its own Selection.
type ChartHandler struct {
	DS  *covid.Dataset
	Log *logrus.Logger
}

func NewChartHandler(ds *covid.Dataset, log *logrus.Logger) *ChartHandler {
	return &ChartHandler{DS: ds, Log: log}
}

// GetCountries lists the distinct countries alphabetically.
func (h *ChartHandler) GetCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.DS.SortedCountries()})
}

// GetRange returns the earliest and latest report dates.
func (h *ChartHandler) GetRange(c *gin.Context) {
	min, max, err := h.DS.DateRange()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"min": covid.FormatDate(min), "max": covid.FormatDate(max)})
}

// GetChart returns the view model for ?country=..&start=..&end=..
func (h *ChartHandler) GetChart(c *gin.Context) {
	sel, ok := h.selection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, covid.Build(h.DS, sel))
}

// GetChartHTML renders the same query as an ECharts page.
func (h *ChartHandler) GetChartHTML(c *gin.Context) {
	sel, ok := h.selection(c)
	if !ok {
		return
	}
	vm := covid.Build(h.DS, sel)
	if vm.Empty {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(emptyPage(vm)))
		return
	}
	var buf bytes.Buffer
	if err := export.HTML(&buf, vm, chartTitle(vm)); err != nil {
		h.Log.WithError(err).Error("render html chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetChartPNG renders the query with go-chart. ?w= and ?h= set the size.
func (h *ChartHandler) GetChartPNG(c *gin.Context) {
	sel, ok := h.selection(c)
	if !ok {
		return
	}
	width, _ := strconv.Atoi(c.DefaultQuery("w", "1200"))
	height, _ := strconv.Atoi(c.DefaultQuery("h", "600"))
	if width < 100 || height < 100 || width > 4000 || height > 4000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "w and h must be between 100 and 4000"})
		return
	}
	vm := covid.Build(h.DS, sel)
	if vm.Empty {
		c.JSON(http.StatusNotFound, gin.H{"error": export.ErrEmptyView.Error(), "invalid_window": vm.InvalidWindow})
		return
	}
	var buf bytes.Buffer
	if err := export.PNG(&buf, vm, chartTitle(vm), width, height); err != nil {
		h.Log.WithError(err).Error("render png chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// selection parses the query into a Selection, writing a 400 on failure.
// Missing bounds default to the dataset range.
func (h *ChartHandler) selection(c *gin.Context) (covid.Selection, bool) {
	min, max, err := h.DS.DateRange()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return covid.Selection{}, false
	}
	start, err := queryDate(c, "start", min)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return covid.Selection{}, false
	}
	end, err := queryDate(c, "end", max)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return covid.Selection{}, false
	}
	var countries []string
	for _, v := range c.QueryArray("country") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				countries = append(countries, name)
			}
		}
	}
	return covid.NewSelection(start, end, countries...), true
}

func queryDate(c *gin.Context, key string, def time.Time) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	d, err := covid.ParseDate(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q, want YYYY-MM-DD", key, raw)
	}
	return d, nil
}

func chartTitle(vm covid.ViewModel) string {
	return "COVID-19: " + strings.Join(vm.Countries, ", ")
}

func emptyPage(vm covid.ViewModel) string {
	msg := "No data available for the selected criteria."
	if vm.InvalidWindow {
		msg += " The start date is after the end date."
	}
	return "<!DOCTYPE html><html><head><title>covidchart</title></head><body><p>" + msg + "</p></body></html>"
}
