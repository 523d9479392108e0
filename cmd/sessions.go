package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dpsn-ai/deepsense-chat/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List archived sessions",
	Long:  `List all archived chat sessions, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		displaySummaries(store.LoadSummaries())
		return nil
	},
}

func displaySummaries(summaries []internal.Session) {
	if len(summaries) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(summaries)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Last Active")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, session := range summaries {
		title := session.Title
		if title == "" {
			title = internal.DefaultSessionTitle
		}
		if runes := []rune(title); len(runes) > 50 {
			title = string(runes[:47]) + "..."
		}
		titleCell := lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(title)

		msgCount := countStyle.Render(strconv.Itoa(session.MessageCount))

		lastActive := dateStyle.Render("—")
		if session.Timestamp > 0 {
			t := session.GetTimestamp()
			now := time.Now()
			diff := now.Sub(t)
			if diff < 24*time.Hour {
				lastActive = dateStyle.Render(t.Format("Today 15:04"))
			} else if diff < 7*24*time.Hour {
				lastActive = dateStyle.Render(t.Format("Mon 15:04"))
			} else if diff < 365*24*time.Hour {
				lastActive = dateStyle.Render(t.Format("Jan 02 15:04"))
			} else {
				lastActive = dateStyle.Render(t.Format("2006-01-02"))
			}
		}

		// Show short ID (first 8 chars) for readability
		id := idStyle.Render(shortID(session.ID))

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, titleCell, msgCount, lastActive)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: Use an ID with `deepsense show <id>` or `/switch <id>` in chat"))
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
