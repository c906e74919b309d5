// Package main is the inkreader terminal book reader.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/justyntemme/inkreader/internal/config"
	"github.com/justyntemme/inkreader/internal/logger"
	"github.com/justyntemme/inkreader/internal/prefs"
	"github.com/justyntemme/inkreader/internal/reader"
	"github.com/justyntemme/inkreader/internal/source"
	"github.com/justyntemme/inkreader/internal/ui"
	"github.com/justyntemme/inkreader/internal/ui/terminal"
)

// CLI defines the command-line interface
type CLI struct {
	Document string `arg:"" optional:"" help:"Book to open: a JSON file (optionally .xz) or an http(s) URL. Defaults to the last opened book."`

	Config    string `name:"config" short:"c" type:"path" help:"Config file (default: ~/.config/inkreader/config.json)"`
	Store     string `name:"store" help:"Settings store: file, sqlite, badger or memory"`
	DataDir   string `name:"data-dir" type:"path" help:"Directory for settings and logs"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFormat string `name:"log-format" help:"Log format: pretty or json"`

	ResetSettings bool `name:"reset-settings" help:"Forget stored reading settings and progress before starting"`
	Debug         bool `name:"debug" help:"Show debug information and exit"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("inkreader"),
		kong.Description("A distraction-free terminal reader for JSON books"),
		kong.UsageOnError(),
	)

	if err := run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()
	client := source.NewClient()

	if cli.Debug {
		return printDebug(ctx, cfg, client)
	}

	dataDir := cfg.ResolvedDataDir()
	logFile, err := logger.OpenFile(dataDir)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	log := logger.New(logger.Config{
		Writer:  logFile,
		Format:  cfg.LogFormat,
		Level:   logger.ParseLevel(cfg.LogLevel),
		NoColor: true,
	})
	log = log.WithField("store", cfg.Store)
	log.Info("starting inkreader", "document", cfg.Document, "data_dir", dataDir)

	backend, err := prefs.Open(cfg.Store, dataDir)
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	store := prefs.NewStore(backend, reader.Limits(), log.Logger)
	defer store.Close()

	if cli.ResetSettings {
		if err := store.Reset(ctx); err != nil {
			return fmt.Errorf("resetting settings: %w", err)
		}
		log.Info("settings reset")
	}

	scheme := terminal.DetectColorScheme()
	opts := ui.Options{
		Context: ctx,
		Config:  cfg,
		Client:  client,
		Store:   store,
		Logger:  log.Logger,
		Scheme:  scheme,
	}

	// Follow desktop color scheme changes when a session bus is available
	if watcher, err := terminal.WatchColorScheme(); err != nil {
		log.WithError(err).Debug("color scheme changes not watched")
	} else {
		opts.Schemes = watcher.Changes()
		opts.OnClose = func() {
			if err := watcher.Close(); err != nil {
				log.WithError(err).Warn("closing color scheme watcher")
			}
		}
	}

	app := ui.NewApp(opts)
	defer app.Session().Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	log.Info("exiting", "settings_writes", store.Writes())
	return nil
}

// loadConfig reads the config file and applies command-line overrides
func loadConfig(cli *CLI) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cli.Config != "" {
		cfg, err = config.LoadFrom(cli.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cli.Document != "" {
		doc, err := resolveDocument(cli.Document)
		if err != nil {
			return nil, err
		}
		cfg.Document = doc
	}
	if cli.Store != "" {
		cfg.Store = cli.Store
	}
	if cli.DataDir != "" {
		cfg.DataDir = cli.DataDir
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.LogFormat = cli.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveDocument makes local paths absolute so the remembered document
// opens from any working directory
func resolveDocument(location string) (string, error) {
	if source.IsRemote(location) {
		return location, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", location, err)
	}
	return abs, nil
}

func printDebug(ctx context.Context, cfg *config.Config, client *source.Client) error {
	fmt.Printf("Config path: %s\n", cfg.Path())
	fmt.Printf("Document: %s\n", cfg.Document)
	fmt.Printf("Settings store: %s (%s)\n", cfg.Store, prefs.Location(cfg.Store, cfg.ResolvedDataDir()))
	fmt.Printf("Log file: %s/%s\n", cfg.ResolvedDataDir(), logger.FileName)
	fmt.Printf("Frame interval: %s\n", cfg.Frame())
	fmt.Printf("Color scheme: %s\n", terminal.DetectColorScheme())

	doc, err := client.Fetch(ctx, cfg.Document)
	if err != nil {
		fmt.Printf("Book: %v\n", err)
		return nil
	}
	fmt.Printf("Book: %s by %s\n", doc.Book.Title, doc.Book.Author)
	fmt.Printf("  %s\n", doc)
	fmt.Printf("  %s payload, %s words\n",
		humanize.Bytes(uint64(doc.Size)), humanize.Comma(int64(doc.Book.WordCount())))
	return nil
}
