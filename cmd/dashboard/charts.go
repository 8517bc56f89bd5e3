package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/internal/logging"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/analytics"
)

// seriesColors cycles across the multi-line trend series.
var seriesColors = []drawing.Color{
	{R: 77, G: 184, B: 255, A: 255},  // Blue
	{R: 250, G: 134, B: 94, A: 255},  // Orange
	{R: 165, G: 235, B: 91, A: 255},  // Green
	{R: 252, G: 201, B: 100, A: 255}, // Yellow
	{R: 208, G: 134, B: 255, A: 255}, // Purple
}

// writeCharts renders the PNG chart set into outDir. Charts whose data is
// empty or too thin to plot are skipped with a log entry, and so are render
// failures: go-chart rejects degenerate value ranges (all values equal, as
// with a single month or an all-zero result), and a missing chart must not
// fail the report that carries the numbers.
func (r *report) writeCharts(ctx context.Context, outDir string) error {
	log := logging.FromContext(ctx)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	monthlyRevenue := make([]chart.Value, 0, len(r.monthly))
	monthlyBills := make([]chart.Value, 0, len(r.monthly))
	for _, m := range r.monthly {
		monthlyRevenue = append(monthlyRevenue, chart.Value{Label: m.Label, Value: m.Revenue.InexactFloat64()})
		monthlyBills = append(monthlyBills, chart.Value{Label: m.Label, Value: float64(m.Bills)})
	}

	bars := []struct {
		file  string
		title string
		vals  []chart.Value
	}{
		{"monthly_revenue.png", "Monthly Revenue", monthlyRevenue},
		{"bills_per_month.png", "Bills per Month", monthlyBills},
		{"revenue_by_store.png", "Revenue by Store", entryValues(r.store)},
		{"revenue_by_category.png", "Revenue by Category", entryValues(r.category)},
		{"weekday_revenue.png", "Revenue by Day of Week", entryValues(r.weekday)},
	}
	for _, b := range bars {
		if !hasPositive(b.vals) {
			log.Warn().Str("chart", b.file).Msg("no positive values, skipping chart")
			continue
		}
		if err := renderBarChart(filepath.Join(outDir, b.file), b.title, b.vals); err != nil {
			log.Warn().Err(err).Str("chart", b.file).Msg("chart render failed, skipping")
		}
	}

	pies := []struct {
		file string
		vals []chart.Value
	}{
		{"channel_share.png", entryValues(r.channel)},
		{"segment_share.png", entryValues(r.segment)},
		{"payment_share.png", entryValues(r.payment)},
	}
	for _, p := range pies {
		if !hasPositive(p.vals) {
			log.Warn().Str("chart", p.file).Msg("no positive values, skipping pie chart")
			continue
		}
		if err := renderPieChart(filepath.Join(outDir, p.file), p.vals); err != nil {
			log.Warn().Err(err).Str("chart", p.file).Msg("chart render failed, skipping")
		}
	}

	if len(r.daily) < 2 {
		log.Warn().Str("chart", "daily_revenue.png").Msg("fewer than two days, skipping time series")
	} else if err := r.renderDailySeries(filepath.Join(outDir, "daily_revenue.png")); err != nil {
		log.Warn().Err(err).Str("chart", "daily_revenue.png").Msg("chart render failed, skipping")
	}

	if len(r.storeMon.Cols()) < 2 {
		log.Warn().Str("chart", "store_month_trend.png").Msg("fewer than two months, skipping trend chart")
	} else if err := r.renderStoreTrend(filepath.Join(outDir, "store_month_trend.png")); err != nil {
		log.Warn().Err(err).Str("chart", "store_month_trend.png").Msg("chart render failed, skipping")
	}

	return nil
}

func entryValues(entries []analytics.Entry) []chart.Value {
	vals := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		vals = append(vals, chart.Value{Label: e.Key, Value: e.Value.InexactFloat64()})
	}
	return vals
}

func hasPositive(vals []chart.Value) bool {
	for _, v := range vals {
		if v.Value > 0 {
			return true
		}
	}
	return false
}

func renderBarChart(path, title string, bars []chart.Value) error {
	barChart := chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}
	barChart.YAxis.ValueFormatter = currencyFormatter

	return renderPNG(path, func(f *os.File) error {
		return barChart.Render(chart.PNG, f)
	})
}

func renderPieChart(path string, values []chart.Value) error {
	pie := chart.PieChart{
		Width:  500,
		Height: 500,
		Values: values,
	}
	return renderPNG(path, func(f *os.File) error {
		return pie.Render(chart.PNG, f)
	})
}

// renderDailySeries plots revenue per day as a time series.
func (r *report) renderDailySeries(path string) error {
	xs := make([]time.Time, 0, len(r.daily))
	ys := make([]float64, 0, len(r.daily))
	for _, e := range r.daily {
		day, err := time.Parse("2006-01-02", e.Key)
		if err != nil {
			return fmt.Errorf("bad date key %q: %w", e.Key, err)
		}
		xs = append(xs, day)
		ys = append(ys, e.Value.InexactFloat64())
	}

	graph := chart.Chart{
		Title: "Daily Revenue",
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 30},
		},
		Width:  1000,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: currencyFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "revenue",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: seriesColors[0], StrokeWidth: 2},
			},
		},
	}
	return renderPNG(path, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

// renderStoreTrend plots one revenue line per store across the months of
// the store-by-month pivot; absent months plot as zero.
func (r *report) renderStoreTrend(path string) error {
	months := r.storeMon.Cols()
	xs := make([]time.Time, 0, len(months))
	for _, m := range months {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			return fmt.Errorf("bad month key %q: %w", m, err)
		}
		xs = append(xs, t)
	}

	var series []chart.Series
	for i, store := range r.storeMon.Rows() {
		ys := make([]float64, 0, len(months))
		for _, m := range months {
			ys = append(ys, r.storeMon.Value(store, m).InexactFloat64())
		}
		color := seriesColors[i%len(seriesColors)]
		series = append(series, chart.TimeSeries{
			Name:    store,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: color, StrokeWidth: 2},
		})
	}

	graph := chart.Chart{
		Title: "Store Revenue by Month",
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 30},
		},
		Width:  1000,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: currencyFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(path, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

func currencyFormatter(v interface{}) string {
	if vf, isFloat := v.(float64); isFloat {
		return fmt.Sprintf("$%.2f", vf)
	}
	return ""
}

func renderPNG(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path) // don't leave a truncated PNG behind
		return fmt.Errorf("rendering chart %s: %w", path, err)
	}
	return f.Close()
}
