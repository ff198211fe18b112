package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/cinedb/pkg/config"
	"github.com/ssargent/cinedb/pkg/di"
	"github.com/ssargent/cinedb/pkg/query"
	"github.com/ssargent/cinedb/pkg/storage"
)

// Command annotations. skipConfig implies skipStore.
const (
	skipStore  = "skip-store"
	skipConfig = "skip-config"
)

var container *di.Container

// SetContainer sets the dependency injection container
func SetContainer(c *di.Container) {
	container = c
}

// cli holds the global flags and everything opened for a single run
type cli struct {
	container *di.Container

	configPath string
	dataDir    string
	backend    string
	format     string
	quiet      bool

	cfg        *config.Config
	logger     *slog.Logger
	store      *storage.Store
	movies     *query.MovieService
	cineplexes *query.CineplexService
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if container == nil {
		container = di.NewContainer()
	}
	if err := run(container, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command line and closes the store whatever the outcome
func run(c *di.Container, args []string, stdout, stderr io.Writer) error {
	rootCmd, app := newRootCmd(c)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if cerr := app.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(c *di.Container) (*cobra.Command, *cli) {
	app := &cli{container: c}

	rootCmd := &cobra.Command{
		Use:   "cinedb",
		Short: "cinedb - cinema catalogue on a flat-string record store",
		Long: `cinedb keeps movies, reviews, cineplexes and showings as flat
field strings in an embedded store, and answers the usual moviegoer
questions: search by title, top rated, most popular and showtimes.

Examples:
  cinedb init
  cinedb seed
  cinedb movie search bat
  cinedb movie top-rated -n 5
  cinedb codec parse 'title#Up~cast#{Ed}'
  cinedb serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "", "config file (default "+config.GetDefaultConfigPath()+")")
	flags.StringVarP(&app.dataDir, "data-dir", "d", "", "data directory (overrides config)")
	flags.StringVarP(&app.backend, "backend", "b", "", "storage backend: pebble, sqlite or memory (overrides config)")
	flags.StringVarP(&app.format, "format", "o", "table", "output format (table or json)")
	flags.BoolVarP(&app.quiet, "quiet", "q", false, "suppress non-essential messages")

	rootCmd.AddCommand(
		newInitCmd(app),
		newSeedCmd(app),
		newMovieCmd(app),
		newCineplexCmd(app),
		newShowingCmd(app),
		newCodecCmd(app),
		newServeCmd(app),
	)
	return rootCmd, app
}

// loadConfig reads the config file named by --config, or the default file
// when it exists, and applies flag overrides.
func (app *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case app.configPath != "":
		loaded, err := config.LoadConfig(app.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case config.ConfigExists(config.GetDefaultConfigPath()):
		loaded, err := config.LoadConfig(config.GetDefaultConfigPath())
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = app.dataDir
	}
	if cmd.Flags().Changed("backend") {
		cfg.Storage.Backend = app.backend
	}
	if app.quiet {
		cfg.Logging.Level = "error"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (app *cli) setup(cmd *cobra.Command) error {
	if app.format != "table" && app.format != "json" {
		return fmt.Errorf("unknown output format %q", app.format)
	}

	if cmd.Annotations[skipConfig] != "" {
		app.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		return nil
	}

	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}
	app.cfg = cfg

	logger, err := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	app.logger = logger

	if cmd.Annotations[skipStore] != "" {
		return nil
	}
	if app.container == nil {
		return fmt.Errorf("dependency container not initialized")
	}

	if cfg.Storage.Backend != storage.BackendMemory {
		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
	}
	store, err := app.container.GetStoreOpener()(storage.Config{
		Backend: cfg.Storage.Backend,
		DataDir: cfg.DataDir,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	app.store = store
	app.movies = query.NewMovieService(store)
	app.cineplexes = query.NewCineplexService(store)
	logger.Debug("store opened", "backend", cfg.Storage.Backend, "data_dir", cfg.DataDir)
	return nil
}

func (app *cli) close() error {
	if app.store == nil {
		return nil
	}
	err := app.store.Close()
	app.store = nil
	return err
}

// say prints a non-essential message unless --quiet is set
func (app *cli) say(cmd *cobra.Command, format string, args ...any) {
	if app.quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
