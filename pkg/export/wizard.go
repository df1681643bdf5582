package export

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/lifeos/pkg/health"
)

// WizardConfig holds the answers gathered before an export run.
type WizardConfig struct {
	Metric     string
	Title      string
	OutputPath string
}

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// RunWizard asks which metric to chart and where to write it. When stdin
// is not a TTY the defaults are returned unchanged so scripted exports
// work without prompts.
func RunWizard(samples []health.Sample, defaults WizardConfig) (WizardConfig, error) {
	cfg := defaults
	if cfg.OutputPath == "" {
		cfg.OutputPath = "chart.svg"
	}

	metrics := metricNames(samples)
	if len(metrics) == 0 {
		return cfg, ErrNoData
	}
	if cfg.Metric == "" {
		cfg.Metric = metrics[0]
	}

	if !isTerminal() {
		return cfg, nil
	}

	options := make([]huh.Option[string], len(metrics))
	for i, m := range metrics {
		options[i] = huh.NewOption(m, m)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Metric").
				Options(options...).
				Value(&cfg.Metric),
			huh.NewInput().
				Title("Chart title").
				Value(&cfg.Title),
			huh.NewInput().
				Title("Output file").
				Value(&cfg.OutputPath),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return cfg, fmt.Errorf("export wizard: %w", err)
	}
	return cfg, nil
}

// Run executes an export: chart the chosen metric's series to SVG.
func Run(samples []health.Sample, cfg WizardConfig) error {
	values := health.Series(samples, cfg.Metric)
	if len(values) == 0 {
		return fmt.Errorf("%w for metric %q", ErrNoData, cfg.Metric)
	}
	title := cfg.Title
	if title == "" {
		title = cfg.Metric
	}
	return SaveLineChart(cfg.OutputPath, values, ChartOptions{
		Title:  title,
		YLabel: cfg.Metric,
	})
}

func metricNames(samples []health.Sample) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range samples {
		if !seen[s.Metric] {
			seen[s.Metric] = true
			names = append(names, s.Metric)
		}
	}
	sort.Strings(names)
	return names
}
