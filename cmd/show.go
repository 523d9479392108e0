package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpsn-ai/deepsense-chat/internal"
	"github.com/spf13/cobra"
)

var (
	showLimit int
	showRaw   bool
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long:  `Replay the messages of an archived chat session. A unique id prefix is enough.`,
	Args:  cobra.ExactArgs(1),
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

		session, msgs, err := lookupSession(store, args[0])
		if err != nil {
			return err
		}

		fmt.Println(sessionHeaderStyle.Render(session.Title))
		fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("Session %s · %d message(s)", session.ID, len(msgs))))

		if showLimit > 0 && len(msgs) > showLimit {
			fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("(showing last %d)", showLimit)))
			msgs = msgs[len(msgs)-showLimit:]
		}

		var renderer *glamour.TermRenderer
		if !showRaw {
			renderer, err = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("failed to create markdown renderer: %w", err)
			}
		}

		for _, msg := range msgs {
			ts := timestampStyle.Render(msg.GetTimestamp().Format(time.RFC822))
			if msg.Role == internal.RoleUser {
				fmt.Printf("%s %s\n  %s\n\n", userMessageStyle.Render("you"), ts, msg.Content)
				continue
			}

			fmt.Printf("%s %s\n", assistantMessageStyle.Render("assistant"), ts)
			content := msg.Content
			if renderer != nil {
				if rendered, err := renderer.Render(content); err == nil {
					content = rendered
				}
			}
			fmt.Println(content)

			for _, action := range msg.Actions {
				fmt.Println(sessionMetaStyle.Render("suggested action: " + action.Action))
			}
		}

		return nil
	},
}

// lookupSession resolves an id or prefix to a summary and its messages.
// Sessions that were never archived (no summary) still resolve when their
// message list exists in storage.
func lookupSession(store *internal.SessionStore, idOrPrefix string) (*internal.Session, []internal.Message, error) {
	summaries := store.LoadSummaries()
	if id, err := resolveSessionID(summaries, idOrPrefix); err == nil {
		if i := internal.FindSummary(summaries, id); i >= 0 {
			return &summaries[i], store.LoadMessages(id), nil
		}
	}

	// Fall back to any stored message list.
	ids, err := store.SessionIDs()
	if err != nil {
		return nil, nil, err
	}
	var match string
	for _, id := range ids {
		if id == idOrPrefix {
			match = id
			break
		}
		if len(idOrPrefix) > 0 && len(id) >= len(idOrPrefix) && id[:len(idOrPrefix)] == idOrPrefix {
			if match != "" {
				return nil, nil, fmt.Errorf("session id prefix %q is ambiguous", idOrPrefix)
			}
			match = id
		}
	}
	if match == "" {
		return nil, nil, fmt.Errorf("no session matches %q", idOrPrefix)
	}

	msgs := store.LoadMessages(match)
	session := internal.Session{
		ID:           match,
		Title:        internal.DeriveTitle(msgs),
		MessageCount: len(msgs),
	}
	if len(msgs) > 0 {
		session.Timestamp = msgs[len(msgs)-1].Timestamp
	}
	return &session, msgs, nil
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showLimit, "limit", 0, "Show only the last N messages (0 = all)")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print raw markdown without terminal rendering")
}
