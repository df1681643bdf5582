package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/lifeos/pkg/health"
)

func TestWriteLineChart(t *testing.T) {
	var sb strings.Builder
	err := WriteLineChart(&sb, []float64{1, 5, 3, 8}, ChartOptions{Title: "Steps", YLabel: "steps"})
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"<svg", "</svg>", "Steps", "polyline", "8.0", "1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q", want)
		}
	}
}

func TestWriteLineChartEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteLineChart(&sb, nil, ChartOptions{}); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestWriteLineChartFlatSeries(t *testing.T) {
	var sb strings.Builder
	if err := WriteLineChart(&sb, []float64{5, 5, 5}, ChartOptions{}); err != nil {
		t.Fatalf("flat series: %v", err)
	}
	if !strings.Contains(sb.String(), "polyline") {
		t.Error("flat series should still draw a line")
	}
}

func TestSaveLineChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := SaveLineChart(path, []float64{2, 4}, ChartOptions{Title: "T"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("file is not SVG")
	}
}

func TestRun(t *testing.T) {
	samples := []health.Sample{
		{Metric: "steps", Value: 7000},
		{Metric: "steps", Value: 8000},
		{Metric: "weight", Value: 80},
	}
	path := filepath.Join(t.TempDir(), "steps.svg")
	err := Run(samples, WizardConfig{Metric: "steps", OutputPath: path})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("chart not written: %v", err)
	}

	err = Run(samples, WizardConfig{Metric: "nope", OutputPath: path})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("missing metric: %v", err)
	}
}

func TestRunWizardNonInteractive(t *testing.T) {
	// Under go test stdin is not a TTY, so the wizard must return the
	// defaults without prompting.
	samples := []health.Sample{{Metric: "steps", Value: 1}}
	cfg, err := RunWizard(samples, WizardConfig{})
	if err != nil {
		t.Fatalf("wizard: %v", err)
	}
	if cfg.Metric != "steps" || cfg.OutputPath != "chart.svg" {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	if _, err := RunWizard(nil, WizardConfig{}); !errors.Is(err, ErrNoData) {
		t.Errorf("empty samples: %v", err)
	}
}
