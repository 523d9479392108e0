package internal

import (
	"strings"
	"testing"
)

func TestRecordingNotifier(t *testing.T) {
	r := &RecordingNotifier{}
	r.Notify(Notification{Kind: NotifyWarning, Title: "Using Mock Response", Description: "endpoint down"})
	r.Notify(Notification{Kind: NotifyError, Title: "Connection Error", Description: "no route"})

	got := r.Notifications()
	if len(got) != 2 {
		t.Fatalf("Notifications() len = %d, want 2", len(got))
	}
	if got[0].Kind != NotifyWarning || got[1].Kind != NotifyError {
		t.Errorf("Kinds = %q, %q, want warning then error", got[0].Kind, got[1].Kind)
	}

	// The returned slice is a copy.
	got[0].Title = "mutated"
	if r.Notifications()[0].Title != "Using Mock Response" {
		t.Error("Notifications() returned backing storage, not a copy")
	}
}

func TestWriterNotifier(t *testing.T) {
	var buf strings.Builder
	w := &WriterNotifier{W: &buf}
	w.Notify(Notification{Kind: NotifyError, Title: "Connection Error", Description: "Using mock response. Check your network connection."})

	out := buf.String()
	if !strings.Contains(out, "Connection Error") {
		t.Errorf("Output missing title: %q", out)
	}
	if !strings.Contains(out, "Check your network connection.") {
		t.Errorf("Output missing description: %q", out)
	}
}
