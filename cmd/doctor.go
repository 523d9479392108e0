package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dpsn-ai/deepsense-chat/internal"
	"github.com/spf13/cobra"
)

var (
	doctorVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check storage and assistant service health",
	Long: `Check the health of deepsense by verifying:
  • Data directory and chat database accessibility
  • Archived session count
  • Assistant query endpoint reachability

Useful for debugging storage or connectivity issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("DeepSense Health Check"))
		fmt.Println()

		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Invalid configuration:"), err)
			return err
		}

		// Step 1: storage
		fmt.Println(infoStyle.Render("Step 1: Checking chat storage..."))
		dbPath, err := internal.DatabasePath(cfg.DataDir)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to resolve data directory:"), err)
			return err
		}
		if doctorVerbose {
			fmt.Printf("   Database: %s\n", dbPath)
		}

		kv, err := internal.OpenSQLiteKV(dbPath)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to open chat database:"), err)
			return err
		}
		store := internal.NewSessionStore(kv, cfg.MaxSessions, cfg.MaxMessages)
		defer func() { _ = store.Close() }()

		summaries := store.LoadSummaries()
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Storage OK (%d archived session(s))", len(summaries))))
		fmt.Println()

		// Step 2: query endpoint
		fmt.Println(infoStyle.Render("Step 2: Checking assistant endpoint..."))
		if doctorVerbose {
			fmt.Printf("   Endpoint: %s/query\n", cfg.QueryURL)
		}

		controller := internal.NewController(store)
		exchange := internal.NewExchange(controller, cfg.QueryURL, nil, nil, nil)

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		if err := exchange.CheckEndpoint(ctx); err != nil {
			fmt.Println(warningStyle.Render("⚠ Assistant endpoint unreachable:"), err)
			fmt.Println(infoStyle.Render("  Chat still works; replies fall back to canned responses."))
			return nil
		}
		fmt.Println(successStyle.Render("✓ Assistant endpoint reachable"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorVerbose, "detail", false, "Show resolved paths and endpoint")
}
