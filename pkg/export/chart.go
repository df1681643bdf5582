// Package export renders metric and finance series to SVG charts.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"
)

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("no data points to chart")

// ChartOptions configures a line chart.
type ChartOptions struct {
	Title  string
	Width  int
	Height int
	// YLabel annotates the vertical axis (metric name or currency).
	YLabel string
}

func (o *ChartOptions) defaults() {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 400
	}
}

// chart geometry
const (
	chartMargin  = 48
	chartPadding = 8
)

// WriteLineChart renders values as a single-series line chart SVG.
func WriteLineChart(w io.Writer, values []float64, opts ChartOptions) error {
	if len(values) == 0 {
		return ErrNoData
	}
	opts.defaults()

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		// Flat series still draws; widen the band so the line centers.
		max = min + 1
	}

	plotW := opts.Width - 2*chartMargin
	plotH := opts.Height - 2*chartMargin

	xs := make([]int, len(values))
	ys := make([]int, len(values))
	for i, v := range values {
		if len(values) == 1 {
			xs[i] = chartMargin + plotW/2
		} else {
			xs[i] = chartMargin + i*plotW/(len(values)-1)
		}
		frac := (v - min) / (max - min)
		ys[i] = chartMargin + plotH - int(frac*float64(plotH))
	}

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#282a36")

	if opts.Title != "" {
		canvas.Text(chartMargin, chartMargin-chartPadding-8, opts.Title,
			"fill:#f8f8f2;font-size:16px;font-family:monospace;font-weight:bold")
	}

	// Axes.
	canvas.Line(chartMargin, chartMargin, chartMargin, chartMargin+plotH, "stroke:#6272a4;stroke-width:1")
	canvas.Line(chartMargin, chartMargin+plotH, chartMargin+plotW, chartMargin+plotH, "stroke:#6272a4;stroke-width:1")

	// Y-axis bounds.
	canvas.Text(chartMargin-chartPadding, chartMargin+4, fmt.Sprintf("%.1f", max),
		"fill:#bfbfbf;font-size:11px;font-family:monospace;text-anchor:end")
	canvas.Text(chartMargin-chartPadding, chartMargin+plotH, fmt.Sprintf("%.1f", min),
		"fill:#bfbfbf;font-size:11px;font-family:monospace;text-anchor:end")
	if opts.YLabel != "" {
		canvas.Text(chartMargin, opts.Height-chartPadding, opts.YLabel,
			"fill:#bfbfbf;font-size:11px;font-family:monospace")
	}

	if len(values) > 1 {
		canvas.Polyline(xs, ys, "fill:none;stroke:#bd93f9;stroke-width:2")
	}
	for i := range xs {
		canvas.Circle(xs[i], ys[i], 3, "fill:#50fa7b")
	}

	canvas.End()
	return nil
}

// SaveLineChart writes the chart to a file.
func SaveLineChart(path string, values []float64, opts ChartOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()
	return WriteLineChart(f, values, opts)
}
