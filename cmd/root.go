package cmd

import (
	"fmt"
	"os"

	"github.com/dpsn-ai/deepsense-chat/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	dataDir    string
	endpoint   string
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deepsense",
	Short: "Chat with the DeepSense assistant from your terminal",
	Long: `DeepSense is a terminal chat client for the DeepSense assistant service.

Conversations are persisted locally, organized into sessions, and can be
listed, replayed, and exported. When the assistant suggests a token swap,
the quote is rendered inline.

Quick Start:
  deepsense chat                    # Start chatting
  deepsense sessions                # List archived sessions
  deepsense show <session-id>       # Replay a session
  deepsense export --format md      # Export a session as Markdown

The assistant endpoint defaults to http://localhost:8001 and can be
overridden with --endpoint or DEEPSENSE_QUERY_URL.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Custom data directory (default: per-OS application data dir)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Assistant query endpoint base URL")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: <data dir>/config.yaml)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig builds the effective config, layering command-line flags on
// top of file and environment values.
func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if endpoint != "" {
		cfg.QueryURL = endpoint
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// openStore opens the session store for the configured data directory.
func openStore(cfg *internal.Config) (*internal.SessionStore, error) {
	dbPath, err := internal.DatabasePath(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	kv, err := internal.OpenSQLiteKV(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat database: %w", err)
	}
	return internal.NewSessionStore(kv, cfg.MaxSessions, cfg.MaxMessages), nil
}
