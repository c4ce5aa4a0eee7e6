package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/histquiz/internal/config"
	"github.com/abhisek/histquiz/internal/highscore"
	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/settings"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/trivia"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "histquiz",
	Short: "History trivia quiz for the terminal",
	Long:  "HistQuiz runs timed-feedback history quizzes from the Open Trivia DB and keeps your high score.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HISTQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/histquiz/config.yaml)")
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "Load environment variables from these .env files (default .env)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(highscoreCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration selected by the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	cfg, err := config.Load(config.LoadOptions{ConfigPath: path, EnvFiles: envFiles})
	if err != nil {
		return config.Config{}, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		if _, err := logging.ParseLevel(lvl); err != nil {
			return config.Config{}, err
		}
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (config file or HISTQUIZ_DB), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// deps holds everything a command needs, opened from flags and config.
type deps struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *store.Store
	settings *settings.Store
	ledger   *highscore.Ledger
	closers  []func() error
}

// openDeps loads config, sets up logging and opens the database. logTo
// receives log lines when no log file is configured; the TUI passes nil
// and gets a file next to the database instead.
func openDeps(cmd *cobra.Command, logTo io.Writer) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logPath := cfg.Log.Path
	if logPath == "" && logTo == nil {
		logPath = filepath.Join(filepath.Dir(dbPath), "histquiz.log")
	}
	logger, closeLog, err := logging.New(logging.Options{Level: cfg.Log.Level, Path: logPath, Writer: logTo})
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st.Close)
	logger.Debug("store opened", "path", dbPath)

	defaults, err := cfg.SettingsDefaults()
	if err != nil {
		d.Close()
		return nil, err
	}
	d.settings, err = settings.NewStore(cmdContext(cmd), st.SettingsRepo(), settings.WithDefaults(defaults))
	if err != nil {
		d.Close()
		return nil, err
	}
	d.ledger = highscore.NewLedger(st.HighScoreRepo())
	return d, nil
}

// newLoader builds the provider client and fallback loader from config.
func (d *deps) newLoader() *trivia.Loader {
	client := trivia.NewClient(
		trivia.WithBaseURL(d.cfg.API.BaseURL),
		trivia.WithCategory(d.cfg.API.Category),
		trivia.WithTimeout(d.cfg.API.Timeout),
		trivia.WithLogger(d.logger),
	)
	return trivia.NewLoader(client, d.logger)
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			fmt.Fprintln(os.Stderr, "close:", err)
		}
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
