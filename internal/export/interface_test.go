package export

import (
	"testing"

	"github.com/dpsn-ai/deepsense-chat/internal"
)

// testTranscript builds a two-message transcript shared across the format
// tests.
func testTranscript() *internal.Transcript {
	return &internal.Transcript{
		Session: internal.Session{
			ID:           "session-1",
			Title:        "what is DPSN?...",
			Timestamp:    1700000000000,
			MessageCount: 2,
		},
		Messages: []internal.Message{
			{ID: "m1", Content: "what is DPSN?", Role: internal.RoleUser, Timestamp: 1700000000000},
			{ID: "m2", Content: "# DPSN\n\nA decentralized pub/sub network.", Role: internal.RoleAssistant, Timestamp: 1700000001000},
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantExt string
		wantErr bool
	}{
		{"jsonl format", "jsonl", "jsonl", false},
		{"markdown format", "md", "md", false},
		{"markdown format long", "markdown", "md", false},
		{"yaml format", "yaml", "yaml", false},
		{"json format", "json", "json", false},
		{"unsupported format", "xml", "", true},
		{"empty format", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExporter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if exporter != nil {
					t.Errorf("NewExporter() returned exporter %T, want nil", exporter)
				}
				return
			}
			if exporter == nil {
				t.Fatal("NewExporter() returned nil exporter")
			}
			if got := exporter.Extension(); got != tt.wantExt {
				t.Errorf("Exporter.Extension() = %v, want %v", got, tt.wantExt)
			}
		})
	}
}
