package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestExchange(t *testing.T, baseURL string, wallet Wallet, notifier Notifier) (*Exchange, *Controller, *SessionStore) {
	t.Helper()
	store := NewSessionStore(NewMemoryKV(), 0, 0)
	c := newTestController(store)
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	e := NewExchange(c, baseURL, wallet, notifier, func(n int) int { return 0 })
	return e, c, store
}

func TestExchange_SendMessage_Success(t *testing.T) {
	var gotReq QueryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/query" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(QueryResponse{
			Response:    "Here is your answer.",
			UserActions: []UserAction{MockSwapAction()},
		})
	}))
	defer server.Close()

	notifier := &RecordingNotifier{}
	e, c, store := newTestExchange(t, server.URL, &StaticWallet{Addr: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"}, notifier)

	userMsg, assistantMsg, err := e.SendMessage(context.Background(), "quote me a swap")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if gotReq.Query != "quote me a swap" {
		t.Errorf("Request query = %q, want the user text", gotReq.Query)
	}
	if gotReq.SessionID != c.ActiveSessionID() {
		t.Errorf("Request session_id = %q, want %q", gotReq.SessionID, c.ActiveSessionID())
	}
	if len(gotReq.Remarks) != 1 || !strings.Contains(gotReq.Remarks[0], "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin") {
		t.Errorf("Request remarks = %v, want the wallet address remark", gotReq.Remarks)
	}

	if userMsg.Role != RoleUser || userMsg.Content != "quote me a swap" {
		t.Errorf("User message = %+v", userMsg)
	}
	if assistantMsg.Role != RoleAssistant || assistantMsg.Content != "Here is your answer." {
		t.Errorf("Assistant message = %+v", assistantMsg)
	}
	if len(assistantMsg.Actions) != 1 || assistantMsg.Actions[0].Action != ActionSwapQuote {
		t.Errorf("Assistant actions = %+v, want one swap_quote", assistantMsg.Actions)
	}

	persisted := store.LoadMessages(c.ActiveSessionID())
	if len(persisted) != 2 {
		t.Fatalf("Persisted messages = %d, want 2", len(persisted))
	}
	if persisted[0].ID != userMsg.ID || persisted[1].ID != assistantMsg.ID {
		t.Errorf("Persisted order = [%s %s], want user then assistant", persisted[0].ID, persisted[1].ID)
	}

	if got := notifier.Notifications(); len(got) != 0 {
		t.Errorf("Success produced notifications: %+v", got)
	}
	if e.Busy() {
		t.Error("Busy() = true after SendMessage returned")
	}
}

func TestExchange_SendMessage_FallbackPicksMessageField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QueryResponse{Message: "from the message field"})
	}))
	defer server.Close()

	e, _, _ := newTestExchange(t, server.URL, nil, nil)
	_, assistantMsg, err := e.SendMessage(context.Background(), "hi")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if assistantMsg.Content != "from the message field" {
		t.Errorf("Content = %q, want the message field", assistantMsg.Content)
	}
}

func TestExchange_SendMessage_EmptyBodyPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QueryResponse{})
	}))
	defer server.Close()

	e, _, _ := newTestExchange(t, server.URL, nil, nil)
	_, assistantMsg, err := e.SendMessage(context.Background(), "hi")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if assistantMsg.Content != EmptyResponsePlaceholder {
		t.Errorf("Content = %q, want the empty-response placeholder", assistantMsg.Content)
	}
}

func TestExchange_SendMessage_ServerErrorFallsBackToMock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := &RecordingNotifier{}
	e, c, store := newTestExchange(t, server.URL, nil, notifier)

	_, assistantMsg, err := e.SendMessage(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if !strings.Contains(assistantMsg.Content, `"hello there"`) {
		t.Errorf("Mock reply does not echo the user text: %q", assistantMsg.Content)
	}
	if len(assistantMsg.Actions) != 0 {
		t.Errorf("Non-swap text produced actions: %+v", assistantMsg.Actions)
	}

	got := notifier.Notifications()
	if len(got) != 1 {
		t.Fatalf("Notifications = %d, want 1", len(got))
	}
	if got[0].Kind != NotifyWarning || got[0].Title != "Using Mock Response" {
		t.Errorf("Notification = %+v, want a Using Mock Response warning", got[0])
	}

	// The fallback pair is still persisted.
	if persisted := store.LoadMessages(c.ActiveSessionID()); len(persisted) != 2 {
		t.Errorf("Persisted messages = %d, want 2", len(persisted))
	}
}

func TestExchange_SendMessage_TransportErrorFallsBackToMock(t *testing.T) {
	notifier := &RecordingNotifier{}
	// Nothing is listening on this address.
	e, _, _ := newTestExchange(t, "http://127.0.0.1:1", nil, notifier)

	_, assistantMsg, err := e.SendMessage(context.Background(), "please swap some SOL")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	got := notifier.Notifications()
	if len(got) != 1 {
		t.Fatalf("Notifications = %d, want 1", len(got))
	}
	if got[0].Kind != NotifyError || got[0].Title != "Connection Error" {
		t.Errorf("Notification = %+v, want a Connection Error", got[0])
	}

	// Swap intent gets the canned quote even in fallback.
	if len(assistantMsg.Actions) != 1 || assistantMsg.Actions[0].Action != ActionSwapQuote {
		t.Errorf("Actions = %+v, want one swap_quote", assistantMsg.Actions)
	}
}

func TestExchange_CheckEndpoint(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QueryResponse{Response: "pong"})
	}))
	defer healthy.Close()

	e, _, _ := newTestExchange(t, healthy.URL, nil, nil)
	if err := e.CheckEndpoint(context.Background()); err != nil {
		t.Errorf("CheckEndpoint() on healthy server error = %v", err)
	}

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	e2, _, _ := newTestExchange(t, broken.URL, nil, nil)
	err := e2.CheckEndpoint(context.Background())
	if err == nil {
		t.Fatal("CheckEndpoint() on broken server returned nil")
	}
	var qe *QueryError
	if !errors.As(err, &qe) || qe.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("CheckEndpoint() error = %v, want a status 503 query error", err)
	}
}
