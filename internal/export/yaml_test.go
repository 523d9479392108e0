package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dpsn-ai/deepsense-chat/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exporter := &YAMLExporter{}

	if err := exporter.Export(testTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded struct {
		Session struct {
			ID    string `yaml:"id"`
			Title string `yaml:"title"`
		} `yaml:"session"`
		Messages []struct {
			Role    string `yaml:"role"`
			Content string `yaml:"content"`
		} `yaml:"messages"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}

	if decoded.Session.ID != "session-1" {
		t.Errorf("Session id = %q, want session-1", decoded.Session.ID)
	}
	if len(decoded.Messages) != 2 {
		t.Fatalf("Messages len = %d, want 2", len(decoded.Messages))
	}
	if decoded.Messages[0].Content != "what is DPSN?" {
		t.Errorf("First content = %q", decoded.Messages[0].Content)
	}

	// Keys match the JSON formats, not yaml's lowercased field names.
	if !strings.Contains(buf.String(), "messageCount:") {
		t.Errorf("Output missing camelCase messageCount key:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "messagecount:") {
		t.Errorf("Output uses lowercased field-name keys:\n%s", buf.String())
	}
}

func TestYAMLExporter_Export_ActionPayloadIsStructured(t *testing.T) {
	var buf bytes.Buffer
	exporter := &YAMLExporter{}

	tr := testTranscript()
	tr.Messages[1].Actions = []internal.UserAction{internal.MockSwapAction()}

	if err := exporter.Export(tr, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	// The action payload must render as readable YAML, not a byte list.
	if !strings.Contains(out, internal.SOLMint) {
		t.Errorf("Output missing the input mint:\n%s", out)
	}
	if strings.Contains(out, "- 123") || strings.Contains(out, "!!binary") {
		t.Errorf("Action payload rendered as raw bytes:\n%s", out)
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
