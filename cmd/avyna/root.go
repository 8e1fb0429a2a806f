package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna"
	"github.com/aretw0/avyna/internal/platform"
	"github.com/aretw0/avyna/pkg/adapters/fs"
)

var (
	verbose    bool
	configPath string
	baseURL    string
	stateDir   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "avyna",
	Short: "Track PCOS and endometriosis symptoms from the terminal",
	Long: `Avyna records daily symptoms, shows your history grouped by day and
the recommendations generated for each log.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+avyna.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API root, overrides config and "+platform.EnvBaseURL)
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Session directory, overrides config and "+platform.EnvStateDir)
}

// loadConfig merges the config file, the environment and the global flags.
func loadConfig() (avyna.Config, error) {
	path, explicit := configPath, configPath != ""
	if !explicit {
		path = avyna.DefaultConfigPath()
	}

	cfg, err := avyna.LoadConfig(path, explicit)
	if err != nil {
		return cfg, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	return cfg, nil
}

// cliNavigator tells the user to log in again instead of switching screens.
var cliNavigator = avyna.NavigatorFunc(func(route string) {
	if route == avyna.LoginRoute {
		fmt.Fprintln(os.Stderr, "Your session has expired. Run `avyna login` to sign in again.")
	}
})

// openApp builds the full client. It requires a usable API base URL.
func openApp() *avyna.App {
	cfg, err := loadConfig()
	if err != nil {
		fatal("Error loading config", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("Error in config", err)
	}

	opts := append(cfg.Options(),
		avyna.WithLogger(slog.Default()),
		avyna.WithNavigator(cliNavigator),
		avyna.WithUserAgent("avyna-cli/"+strings.TrimSpace(avyna.Version)),
	)
	app, err := avyna.New(opts...)
	if err != nil {
		fatal("Error initializing avyna", err)
	}
	return app
}

// openStore opens only the session store, for commands that never reach the
// API.
func openStore() *fs.Store {
	cfg, err := loadConfig()
	if err != nil {
		fatal("Error loading config", err)
	}

	dir := platform.ResolveStateDir(cfg.StateDir, platform.IsDevRun())
	store := fs.NewStore(fs.Config{Path: dir, ReadOnly: cfg.ReadOnly, Logger: slog.Default()})
	if err := store.Initialize(context.Background()); err != nil {
		fatal("Error opening session store", err)
	}
	return store
}
