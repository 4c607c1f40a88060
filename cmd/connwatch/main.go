package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"connwatch/internal/collector"
	"connwatch/internal/stats"
	"connwatch/internal/tui"
)

// version is set via -ldflags at build time.
var version = "dev"

// tabFlags collects repeated --tab flags in order.
type tabFlags []string

func (t *tabFlags) String() string { return fmt.Sprint([]string(*t)) }

func (t *tabFlags) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func main() {
	fs := flag.NewFlagSet("connwatch", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  connwatch [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "path to TOML config file")
	retention := fs.Float64("retention-period", 600.0, "snapshot retention period in seconds")
	sourceType := fs.String("source", "", "stats source: http or docker")
	url := fs.String("url", "", "stats endpoint URL (http source)")
	dockerSocket := fs.String("docker-socket", "", "Docker socket path (docker source)")
	interval := fs.Duration("interval", 0, "poll interval")
	logFile := fs.String("log-file", "", "write collector logs to this file (default: discard)")
	showVersion := fs.Bool("version", false, "print version and exit")
	var tabs tabFlags
	fs.Var(&tabs, "tab", "tab spec \"NAME=KEY_PATTERN:VALUE_PATTERN\" (repeatable)")

	fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println("connwatch " + version)
		return
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "retention-period":
			cfg.UI.RetentionPeriod = *retention
		case "source":
			cfg.Source.Type = *sourceType
		case "url":
			cfg.Source.URL = *url
		case "docker-socket":
			cfg.Source.DockerSocket = *dockerSocket
		case "interval":
			cfg.Collect.Interval.Duration = *interval
		case "tab":
			cfg.UI.Tabs = tabs
		}
	})

	if err := validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(*logFile)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes slog away from the terminal the TUI owns.
func setupLogging(path string) {
	w := io.Discard
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		w = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, nil)))
}

func newSource(cfg *Config) (collector.Source, error) {
	switch cfg.Source.Type {
	case "http":
		return collector.NewHTTPSource(cfg.Source.URL, cfg.Source.Timeout.Duration), nil
	case "docker":
		return collector.NewDockerSource(cfg.Source.DockerSocket)
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}
}

func run(cfg *Config) error {
	tabs, err := stats.ParseTabs(cfg.UI.Tabs)
	if err != nil {
		return err
	}

	source, err := newSource(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := collector.NewRunner(source, cfg.Collect.Interval.Duration)
	go runner.Run(ctx)

	window := stats.NewWindow(cfg.retention(), cfg.UI.MaxSnapshots)
	app := tui.NewApp(tabs, window, runner.Snapshots())

	p := tea.NewProgram(app, tea.WithAltScreen())
	model, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if final, ok := model.(tui.App); ok && final.Err() != nil {
		return final.Err()
	}
	return nil
}
