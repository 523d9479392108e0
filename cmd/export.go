package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dpsn-ai/deepsense-chat/internal"
	"github.com/dpsn-ai/deepsense-chat/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat    string
	exportOutputDir string
	exportSessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to file",
	Long: `Export chat sessions to various formats (jsonl, md, yaml, json).

Exports every archived session by default; use --session to export one.
Use 'deepsense sessions' to see available session IDs.`,
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

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		summaries := store.LoadSummaries()
		if exportSessionID != "" {
			session, msgs, err := lookupSession(store, exportSessionID)
			if err != nil {
				return err
			}
			return writeTranscript(exporter, &internal.Transcript{Session: *session, Messages: msgs})
		}

		if len(summaries) == 0 {
			fmt.Println(headerStyle.Render("No sessions to export"))
			return nil
		}

		for _, session := range summaries {
			t := &internal.Transcript{
				Session:  session,
				Messages: store.LoadMessages(session.ID),
			}
			if err := writeTranscript(exporter, t); err != nil {
				return err
			}
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Exported %d session(s)", len(summaries))))
		return nil
	},
}

// writeTranscript writes one transcript to <output-dir>/<session-id>.<ext>.
func writeTranscript(exporter export.Exporter, t *internal.Transcript) error {
	if err := os.MkdirAll(exportOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(exportOutputDir, fmt.Sprintf("%s.%s", t.Session.ID, exporter.Extension()))
	f, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := exporter.Export(t, f); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	internal.LogInfo("Exported session %s to %s", t.Session.ID, path)
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "jsonl", "Export format: jsonl, md, yaml, json")
	exportCmd.Flags().StringVarP(&exportOutputDir, "output", "o", ".", "Output directory")
	exportCmd.Flags().StringVar(&exportSessionID, "session", "", "Export a single session by id (prefix allowed)")
}
