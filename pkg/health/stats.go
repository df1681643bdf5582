// Package health derives summary statistics for metric series logged in
// the health pane. Metric entries are event resources carrying "metric"
// and "value" keys in their metadata bag.
package health

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// Sample is one metric observation.
type Sample struct {
	Metric string
	Value  float64
	Label  string // originating resource title
}

// Summary aggregates one metric's samples.
type Summary struct {
	Metric string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	// Trend is the slope of a least-squares line through the samples in
	// logged order: positive means the metric is rising.
	Trend float64
}

// SamplesFrom extracts metric samples from resources, in input order.
// Resources without a parseable numeric "value" are skipped.
func SamplesFrom(resources []model.Resource) []Sample {
	var samples []Sample
	for _, r := range resources {
		metric := r.MetaData.String("metric")
		if metric == "" {
			continue
		}
		raw := r.MetaData.String("value")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Metadata bags decode JSON numbers as float64.
			f, ok := r.MetaData["value"].(float64)
			if !ok {
				continue
			}
			v = f
		}
		samples = append(samples, Sample{Metric: metric, Value: v, Label: r.Title})
	}
	return samples
}

// Summarize groups samples by metric name and computes per-metric
// summaries, sorted by metric name.
func Summarize(samples []Sample) []Summary {
	byMetric := make(map[string][]float64)
	for _, s := range samples {
		byMetric[s.Metric] = append(byMetric[s.Metric], s.Value)
	}

	summaries := make([]Summary, 0, len(byMetric))
	for metric, values := range byMetric {
		s := Summary{Metric: metric, Count: len(values)}
		s.Mean = stat.Mean(values, nil)
		if len(values) > 1 {
			s.StdDev = stat.StdDev(values, nil)
		}
		s.Min, s.Max = values[0], values[0]
		for _, v := range values[1:] {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		if len(values) > 1 {
			xs := make([]float64, len(values))
			for i := range xs {
				xs[i] = float64(i)
			}
			_, s.Trend = stat.LinearRegression(xs, values, nil, false)
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Metric < summaries[j].Metric
	})
	return summaries
}

// Series returns the values for one metric, in sample order.
func Series(samples []Sample, metric string) []float64 {
	var values []float64
	for _, s := range samples {
		if s.Metric == metric {
			values = append(values, s.Value)
		}
	}
	return values
}
