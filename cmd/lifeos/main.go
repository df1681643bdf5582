package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/internal/store"
	"github.com/vanderheijden86/lifeos/pkg/config"
	"github.com/vanderheijden86/lifeos/pkg/export"
	"github.com/vanderheijden86/lifeos/pkg/health"
	"github.com/vanderheijden86/lifeos/pkg/ui"
	"github.com/vanderheijden86/lifeos/pkg/version"
	"github.com/vanderheijden86/lifeos/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dbPath := flag.String("db", "", "Database path (overrides config)")
	seedFlag := flag.Bool("seed", false, "Seed demo data on startup")
	sandboxPath := flag.String("sandbox", "", "Node document (JSON) for the sandbox pane")
	exportMetric := flag.String("export", "", "Export a chart for the given health metric and exit")
	exportOut := flag.String("out", "", "Output path for --export (default <metric>.svg)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: lifeos [options]")
		fmt.Println("\nA terminal personal organizer: tasks, household lists, health,")
		fmt.Println("finance and notes in one keyboard-driven app.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("lifeos %s\n", version.Version)
		os.Exit(0)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		cfg = config.DefaultConfig()
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	path := cfg.ResolvedDatabasePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing data directory: %v\n", err)
		os.Exit(1)
	}

	s, err := store.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database %s: %v\n", path, err)
		os.Exit(1)
	}
	defer s.Close()

	if *seedFlag {
		if err := s.SeedDemo(); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding demo data: %v\n", err)
			os.Exit(1)
		}
	}

	// Headless chart export: run the wizard (or take flags) and exit.
	if *exportMetric != "" {
		if err := runExport(s, *exportMetric, *exportOut); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	w, err := watcher.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watching disabled: %v\n", err)
		w = nil
	} else if err := w.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watching disabled: %v\n", err)
		w = nil
	}
	if w != nil {
		defer w.Stop()
	}

	theme := ui.DefaultTheme(lipgloss.DefaultRenderer())
	m := ui.NewModel(s, theme, ui.Options{
		Config:      cfg,
		Watcher:     w,
		SandboxPath: *sandboxPath,
	})

	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lifeos: %v\n", err)
		os.Exit(1)
	}
}

// runExport extracts samples under the health root and writes a chart.
// With a TTY the export wizard confirms metric and output path first.
func runExport(s *store.Store, metric, out string) error {
	root, err := s.EnsureContextRoot("health", "Health")
	if err != nil {
		return err
	}
	subtree, err := s.ListSubtree(root.ID)
	if err != nil {
		return err
	}
	samples := health.SamplesFrom(subtree)

	if out == "" {
		out = metric + ".svg"
	}
	wiz, err := export.RunWizard(samples, export.WizardConfig{
		Metric:     metric,
		Title:      metric,
		OutputPath: out,
	})
	if err != nil {
		return err
	}
	if err := export.Run(samples, wiz); err != nil {
		return err
	}
	fmt.Printf("Chart written to %s\n", wiz.OutputPath)
	return nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set LIFEOS_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("LIFEOS_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
