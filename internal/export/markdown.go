package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dpsn-ai/deepsense-chat/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(t *internal.Transcript, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# %s\n\n", t.Session.Title)

	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", t.Session.ID)
	if t.Session.Timestamp != 0 {
		_, _ = fmt.Fprintf(w, "**Last active:** %s  \n", t.Session.GetTimestamp().Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(t.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	// Messages
	for i, msg := range t.Messages {
		timestamp := ""
		if msg.Timestamp != 0 {
			timestamp = fmt.Sprintf(" (%s)", msg.GetTimestamp().Format(time.RFC3339))
		}

		// User turns are escaped; assistant turns are already markdown.
		content := msg.Content
		if msg.Role == internal.RoleUser {
			content = escapeMarkdown(content)
		}

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", msg.Role, timestamp, content)

		for _, action := range msg.Actions {
			_, _ = fmt.Fprintf(w, "> suggested action: `%s`\n\n", action.Action)
		}

		// Add horizontal rule after each message (except the last one)
		if i < len(t.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
