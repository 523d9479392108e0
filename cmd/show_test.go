package cmd

import (
	"testing"

	"github.com/dpsn-ai/deepsense-chat/internal"
)

func newPopulatedStore(t *testing.T) *internal.SessionStore {
	t.Helper()
	store := internal.NewSessionStore(internal.NewMemoryKV(), 0, 0)

	if err := store.SaveMessages("archived-1", []internal.Message{
		{ID: "m1", Content: "hello", Role: internal.RoleUser, Timestamp: 1000},
		{ID: "m2", Content: "hi there", Role: internal.RoleAssistant, Timestamp: 2000},
	}); err != nil {
		t.Fatalf("SaveMessages() error = %v", err)
	}
	if err := store.SaveSummaries([]internal.Session{
		{ID: "archived-1", Title: "hello...", Timestamp: 2000, MessageCount: 2},
	}); err != nil {
		t.Fatalf("SaveSummaries() error = %v", err)
	}

	// A session with stored messages but no summary.
	if err := store.SaveMessages("orphan-1", []internal.Message{
		{ID: "m3", Content: "orphaned conversation", Role: internal.RoleUser, Timestamp: 3000},
	}); err != nil {
		t.Fatalf("SaveMessages() error = %v", err)
	}
	return store
}

func TestLookupSession_ByPrefix(t *testing.T) {
	store := newPopulatedStore(t)

	session, msgs, err := lookupSession(store, "archived")
	if err != nil {
		t.Fatalf("lookupSession() error = %v", err)
	}
	if session.ID != "archived-1" {
		t.Errorf("Session id = %q, want archived-1", session.ID)
	}
	if session.Title != "hello..." {
		t.Errorf("Title = %q, want the archived title", session.Title)
	}
	if len(msgs) != 2 {
		t.Errorf("Messages len = %d, want 2", len(msgs))
	}
}

func TestLookupSession_OrphanedMessages(t *testing.T) {
	store := newPopulatedStore(t)

	session, msgs, err := lookupSession(store, "orphan-1")
	if err != nil {
		t.Fatalf("lookupSession() error = %v", err)
	}
	if session.ID != "orphan-1" {
		t.Errorf("Session id = %q, want orphan-1", session.ID)
	}
	// The summary is synthesized from the stored messages.
	if session.Title != "orphaned conversation..." {
		t.Errorf("Title = %q, want one derived from the first message", session.Title)
	}
	if session.MessageCount != 1 || len(msgs) != 1 {
		t.Errorf("Counts = %d/%d, want 1/1", session.MessageCount, len(msgs))
	}
	if session.Timestamp != 3000 {
		t.Errorf("Timestamp = %d, want the last message's", session.Timestamp)
	}
}

func TestLookupSession_NoMatch(t *testing.T) {
	store := newPopulatedStore(t)
	if _, _, err := lookupSession(store, "missing"); err == nil {
		t.Error("lookupSession() for an unknown id returned nil error")
	}
}
