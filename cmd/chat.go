package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpsn-ai/deepsense-chat/internal"
	"github.com/spf13/cobra"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	thinkingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat with the DeepSense assistant.

Every launch begins a fresh session; previous conversations stay in the
archive and can be resumed with /switch.

In-chat commands:
  /new            Start a new session
  /sessions       List archived sessions
  /switch <id>    Switch to an archived session (id prefix is enough)
  /quit           Save and exit`,
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

		controller := internal.NewController(store)
		if err := controller.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		wallet := &internal.StaticWallet{Addr: cfg.WalletAddress}
		notifier := &internal.WriterNotifier{W: os.Stderr}
		exchange := internal.NewExchange(controller, cfg.QueryURL, wallet, notifier, nil)
		widget := &internal.TextWidget{W: os.Stdout}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}

		// Ctrl-C cancels the context instead of tearing down from a second
		// goroutine; the loop below sees the cancellation and runs the
		// Shutdown flush itself, on the goroutine that owns the session
		// state.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println(welcomeStyle.Render("Welcome to DeepSense by DPSN"))
		fmt.Println(hintStyle.Render("Start a conversation to begin your chat session. /help for commands."))
		fmt.Println()

		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for {
				fmt.Print(promptStyle.Render("you › "))
				if !scanner.Scan() {
					return
				}
				select {
				case lines <- scanner.Text():
				case <-ctx.Done():
					return
				}
			}
		}()

		return chatLoop(ctx, controller, exchange, widget, renderer, cfg.RPCEndpoint, lines)
	},
}

// chatLoop consumes input lines until the channel closes, /quit, or the
// context is cancelled. All session state, including the final Shutdown
// flush (the page-unload hook), stays on this goroutine; the reader
// goroutine only ever touches stdin.
func chatLoop(ctx context.Context, controller *internal.Controller, exchange *internal.Exchange, widget internal.SwapWidget, renderer *glamour.TermRenderer, rpcEndpoint string, lines <-chan string) error {
	defer func() {
		if err := controller.Shutdown(); err != nil {
			internal.LogWarn("Shutdown flush failed: %v", err)
		}
	}()

	for {
		var raw string
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case raw, ok = <-lines:
			if !ok {
				return nil
			}
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := runChatCommand(controller, line)
			if err != nil {
				fmt.Println(errorStyle.Render("✗ " + err.Error()))
			}
			if quit {
				return nil
			}
			continue
		}

		_, assistantMsg, err := sendWithIndicator(ctx, exchange, line)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ failed to send message: " + err.Error()))
			continue
		}
		if assistantMsg == nil {
			continue
		}

		rendered, err := renderer.Render(assistantMsg.Content)
		if err != nil {
			rendered = assistantMsg.Content + "\n"
		}
		fmt.Print(rendered)

		renderActions(assistantMsg.Actions, widget, rpcEndpoint)
	}
}

// sendWithIndicator runs the exchange on the calling goroutine and paints
// a lightweight busy indicator from a second one. Only the indicator runs
// concurrently; all session state stays on this goroutine.
func sendWithIndicator(ctx context.Context, exchange *internal.Exchange, line string) (*internal.Message, *internal.Message, error) {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(300 * time.Millisecond)
		defer ticker.Stop()
		dots := 0
		for {
			select {
			case <-stop:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				if exchange.Busy() {
					dots = dots%3 + 1
					fmt.Fprintf(os.Stderr, "\r%s", thinkingStyle.Render("thinking"+strings.Repeat(".", dots)))
				}
			}
		}
	}()

	userMsg, assistantMsg, err := exchange.SendMessage(ctx, line)
	close(stop)
	return userMsg, assistantMsg, err
}

// runChatCommand handles slash commands. Returns true when the loop
// should exit.
func runChatCommand(controller *internal.Controller, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/new":
		if err := controller.StartNewSession(); err != nil {
			return false, err
		}
		fmt.Println(hintStyle.Render("Started a new session."))
		return false, nil
	case "/sessions":
		summaries := controller.Summaries()
		if len(summaries) == 0 {
			fmt.Println(hintStyle.Render("No archived sessions yet."))
			return false, nil
		}
		for _, s := range summaries {
			fmt.Printf("  %s  %s (%d messages)\n", idStyle.Render(shortID(s.ID)), s.Title, s.MessageCount)
		}
		return false, nil
	case "/switch":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /switch <session-id>")
		}
		target, err := resolveSessionID(controller.Summaries(), fields[1])
		if err != nil {
			return false, err
		}
		if err := controller.SelectSession(target); err != nil {
			return false, err
		}
		fmt.Println(hintStyle.Render(fmt.Sprintf("Switched to session %s (%d messages).", shortID(target), controller.MessageCount())))
		return false, nil
	case "/help":
		fmt.Println(hintStyle.Render("Commands: /new, /sessions, /switch <id>, /quit"))
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
}

// renderActions surfaces structured assistant actions. Swap quotes go
// through the widget; unrecognized tags are named but not interpreted.
func renderActions(actions []internal.UserAction, widget internal.SwapWidget, rpcEndpoint string) {
	for _, action := range actions {
		quote, ok, err := action.SwapQuote()
		if err != nil {
			internal.LogWarn("Failed to decode swap quote: %v", err)
			continue
		}
		if !ok {
			fmt.Println(hintStyle.Render("suggested action: " + action.Action))
			continue
		}
		if err := widget.Init(internal.BuildWidgetConfig(quote, rpcEndpoint)); err != nil {
			internal.LogWarn("Swap widget init failed: %v", err)
		}
	}
}

// resolveSessionID matches a full id or unique prefix against the
// archived sessions.
func resolveSessionID(summaries []internal.Session, prefix string) (string, error) {
	var match string
	for _, s := range summaries {
		if s.ID == prefix {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("session id prefix %q is ambiguous", prefix)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no archived session matches %q", prefix)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
