package main

import (
	"fmt"
	"os"

	"github.com/robottwo/trophy/internal/config"
	"github.com/robottwo/trophy/internal/store"
	"github.com/robottwo/trophy/internal/styles"
	"github.com/robottwo/trophy/internal/tracker"
	"github.com/robottwo/trophy/internal/trophy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

var (
	// Global flags
	assumeYes bool
	ephemeral bool

	cfg     config.Config
	logger  = zap.NewNop()
	backend *store.SQLiteBackend
	trk     *tracker.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "trophy",
	Short: "Steam Trophy Hunter - track achievements across your games",
	Long: `Steam Trophy Hunter keeps a local list of game achievements and your
progress on them.

Paste an achievement page copied from a tracking site into "trophy sync" to
mark unlocked achievements and update progress counters, move your data
between machines with "trophy export" and "trophy import", and build an AI
guide prompt for anything you are stuck on with "trophy guide".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		return openApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeApp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), BUILD_VERSION)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep data in memory for this run only")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(trophy.UserMessage(err)))
		os.Exit(1)
	}
}

// openApp loads the configuration and opens the logger, the database and
// the tracker state for one command invocation.
func openApp() error {
	var err error
	cfg, err = config.Load(nil)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logger, err = initializeLogger(cfg)
	if err != nil {
		return err
	}

	logger.Info("-------- new trophy session --------", zap.Any("args", os.Args))

	var kv store.Backend = store.NewMemoryBackend()
	if !ephemeral {
		backend, err = store.NewSQLiteBackend(cfg.Paths().DatabaseFile)
		if err != nil {
			logger.Error("failed to open database", zap.Error(err))
			return fmt.Errorf("open database: %w", err)
		}
		kv = backend
	}

	trk = tracker.Open(store.New(kv, logger), logger, tracker.Defaults{
		AIProvider:    cfg.AIProvider,
		GuideLanguage: cfg.GuideLanguage,
	})
	return nil
}

func closeApp() {
	if backend != nil {
		if err := backend.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
		backend = nil
	}
	_ = logger.Sync() // Flush any buffered log entries
}

func initializeLogger(cfg config.Config) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	if cfg.CleanLogFile {
		_ = os.Remove(cfg.Paths().LogFile)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		cfg.Paths().LogFile,
	}
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}
