package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"covidchart/internal/config"
	"covidchart/internal/covid"
	"covidchart/internal/export"
	"covidchart/internal/logging"
	"covidchart/internal/server"
	"covidchart/internal/tui"
)

func main() {
	fs := pflag.NewFlagSet("covidchart", pflag.ExitOnError)
	config.Flags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: covidchart [flags] [data.csv|data.json]\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])
	if fs.NArg() > 0 {
		fs.Set("data", fs.Arg(0))
	}

	cfg, err := config.Load(fs)
	if err != nil {
		logrus.Fatalf("Config error: %v", err)
	}

	// The UI owns the terminal, so its logs go to a file or nowhere.
	interactive := cfg.Server.Addr == "" && !cfg.Exporting()
	var cleanup func()
	if interactive || cfg.Log.File != "" {
		cleanup, err = logging.Setup(cfg.Log.File, cfg.Log.Level)
	} else {
		cleanup, err = func() {}, logging.Console(cfg.Log.Level)
	}
	if err != nil {
		logrus.Fatalf("Logging error: %v", err)
	}
	defer cleanup()

	ds, err := covid.LoadFile(cfg.Data.Path, covid.LoadOptions{SkipMalformed: cfg.Data.SkipMalformed})
	if err != nil {
		fatal(interactive, "Load error: %v", err)
	}
	if _, _, err := ds.DateRange(); err != nil {
		fatal(interactive, "Load error: %s: %v", cfg.Data.Path, err)
	}
	logrus.WithFields(logrus.Fields{
		"path":      cfg.Data.Path,
		"records":   ds.Len(),
		"countries": len(ds.SortedCountries()),
		"skipped":   ds.Skipped(),
	}).Info("dataset loaded")

	switch {
	case cfg.Server.Addr != "":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := server.Run(ctx, cfg.Server.Addr, ds, logrus.StandardLogger()); err != nil {
			logrus.Fatalf("Server error: %v", err)
		}
	case cfg.Exporting():
		if err := runExport(cfg, ds); err != nil {
			logrus.Fatalf("Export error: %v", err)
		}
	default:
		m, err := tui.New(ds, tui.Options{
			Path:         cfg.Data.Path,
			Countries:    cfg.UI.Countries,
			StepDays:     cfg.UI.StepDays,
			Load:         covid.LoadOptions{SkipMalformed: cfg.Data.SkipMalformed},
			ExportWidth:  cfg.Export.Width,
			ExportHeight: cfg.Export.Height,
		})
		if err != nil {
			fatal(true, "UI error: %v", err)
		}
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
			fatal(true, "UI error: %v", err)
		}
	}
}

// fatal reports on stderr even when logrus is pointed at a file or discarded,
// then exits non-zero.
func fatal(interactive bool, format string, args ...any) {
	if interactive {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	logrus.Fatalf(format, args...)
}

func runExport(cfg *config.Config, ds *covid.Dataset) error {
	first, last, err := ds.DateRange()
	if err != nil {
		return err
	}
	start, end := first, last
	if cfg.Export.Start != "" {
		if start, err = covid.ParseDate(cfg.Export.Start); err != nil {
			return fmt.Errorf("export.start: %w", err)
		}
	}
	if cfg.Export.End != "" {
		if end, err = covid.ParseDate(cfg.Export.End); err != nil {
			return fmt.Errorf("export.end: %w", err)
		}
	}
	vm := covid.Build(ds, covid.NewSelection(start, end, cfg.UI.Countries...))
	if vm.Empty {
		if vm.InvalidWindow {
			return fmt.Errorf("%w (start %s is after end %s)", export.ErrEmptyView, covid.FormatDate(start), covid.FormatDate(end))
		}
		return export.ErrEmptyView
	}
	title := "COVID-19 " + covid.FormatDate(start) + " to " + covid.FormatDate(end)

	write := func(path string, render func(f *os.File) error) error {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render(f); err != nil {
			f.Close()
			return errors.Join(err, os.Remove(path))
		}
		if err := f.Close(); err != nil {
			return err
		}
		logrus.WithField("path", path).Info("exported chart")
		return nil
	}
	if cfg.Export.HTML != "" {
		if err := write(cfg.Export.HTML, func(f *os.File) error { return export.HTML(f, vm, title) }); err != nil {
			return err
		}
	}
	if cfg.Export.PNG != "" {
		if err := write(cfg.Export.PNG, func(f *os.File) error {
			return export.PNG(f, vm, title, cfg.Export.Width, cfg.Export.Height)
		}); err != nil {
			return err
		}
	}
	return nil
}
