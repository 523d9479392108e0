package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultQueryURL is where the assistant service is expected to live when
// nothing overrides it.
const DefaultQueryURL = "http://localhost:8001"

// EmptyResponsePlaceholder stands in for a 2xx reply whose body carried no
// usable content.
const EmptyResponsePlaceholder = "Sorry, I received an empty response."

// QueryRequest is the JSON body sent to the query endpoint.
type QueryRequest struct {
	Query     string   `json:"query"`
	SessionID string   `json:"session_id"`
	Remarks   []string `json:"remarks"`
}

// QueryResponse is the JSON body expected back. Either response or message
// carries the reply text; user_actions is optional.
type QueryResponse struct {
	Response    string       `json:"response"`
	Message     string       `json:"message"`
	UserActions []UserAction `json:"user_actions"`
}

// Exchange turns a user utterance into a persisted pair of messages: the
// user's, then the assistant's. When the remote service is unreachable it
// degrades to a locally generated mock reply and tells the user so.
type Exchange struct {
	controller *Controller
	httpClient *http.Client
	baseURL    string
	wallet     Wallet
	notifier   Notifier
	pick       Selector
	now        func() time.Time
	newID      func() string

	busy atomic.Bool
}

// NewExchange wires an exchange to a controller. wallet and notifier may
// be nil; the selector may be nil for random mock responses.
func NewExchange(controller *Controller, baseURL string, wallet Wallet, notifier Notifier, pick Selector) *Exchange {
	if baseURL == "" {
		baseURL = DefaultQueryURL
	}
	return &Exchange{
		controller: controller,
		httpClient: &http.Client{},
		baseURL:    baseURL,
		wallet:     wallet,
		notifier:   notifier,
		pick:       pick,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// Busy reports whether a query is in flight. The presentation layer polls
// this for its loading indicator.
func (e *Exchange) Busy() bool {
	return e.busy.Load()
}

// SendMessage appends a user message to the active session, queries the
// assistant service, and appends the reply. The user message is persisted
// before the network call begins; the assistant message follows it, even
// when the user has switched sessions in the meantime (the reply then goes
// to the originating session's stored history). The returned error is a
// storage error; query failures degrade to a mock reply instead.
func (e *Exchange) SendMessage(ctx context.Context, content string) (*Message, *Message, error) {
	originID := e.controller.ActiveSessionID()

	userMsg := Message{
		ID:        e.newID(),
		Content:   content,
		Role:      RoleUser,
		Timestamp: e.now().UnixMilli(),
	}
	if err := e.controller.AppendMessage(originID, userMsg); err != nil {
		return nil, nil, err
	}

	e.busy.Store(true)
	defer e.busy.Store(false)

	replyContent, actions := e.query(ctx, content, originID)

	assistantMsg := Message{
		ID:        e.newID(),
		Content:   replyContent,
		Role:      RoleAssistant,
		Timestamp: e.now().UnixMilli(),
		Actions:   actions,
	}
	if err := e.controller.AppendMessage(originID, assistantMsg); err != nil {
		return &userMsg, nil, err
	}

	return &userMsg, &assistantMsg, nil
}

// query calls the remote endpoint and falls back to a mock reply on any
// failure. It always produces usable content.
func (e *Exchange) query(ctx context.Context, content, sessionID string) (string, []UserAction) {
	remarks := []string{}
	if e.wallet != nil && e.wallet.Connected() {
		remarks = append(remarks, "my solana wallet address is "+e.wallet.Address())
	}

	body, err := json.Marshal(QueryRequest{
		Query:     content,
		SessionID: sessionID,
		Remarks:   remarks,
	})
	if err != nil {
		LogError("Failed to encode query request: %v", err)
		return e.mockReply(content, "Connection Error", "Using mock response. Check your network connection.", NotifyError)
	}

	url := e.baseURL + "/query"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		LogError("Failed to create query request: %v", err)
		return e.mockReply(content, "Connection Error", "Using mock response. Check your network connection.", NotifyError)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		LogWarn("Query request failed: %v", (&QueryError{URL: url, Err: err}).Error())
		return e.mockReply(content, "Connection Error", "Using mock response. Check your network connection.", NotifyError)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		LogWarn("%v", &QueryError{URL: url, StatusCode: resp.StatusCode})
		return e.mockReply(content, "Using Mock Response", "API endpoint not available, using mock response instead.", NotifyWarning)
	}

	var parsed QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		LogWarn("Failed to parse query response: %v", err)
		return e.mockReply(content, "Using Mock Response", "API endpoint not available, using mock response instead.", NotifyWarning)
	}

	replyContent := parsed.Response
	if replyContent == "" {
		replyContent = parsed.Message
	}
	if replyContent == "" {
		replyContent = EmptyResponsePlaceholder
	}
	return replyContent, parsed.UserActions
}

// mockReply produces the canned fallback and surfaces a notification
// distinguishing why the fallback was used.
func (e *Exchange) mockReply(content, title, description string, kind NotificationKind) (string, []UserAction) {
	if e.notifier != nil {
		e.notifier.Notify(Notification{Kind: kind, Title: title, Description: description})
	}

	var actions []UserAction
	if HasSwapIntent(content) {
		actions = []UserAction{MockSwapAction()}
	}
	return MockResponse(content, e.pick), actions
}

// CheckEndpoint probes the query endpoint. Used by the doctor command; a
// non-nil error means the service is unreachable or unhealthy.
func (e *Exchange) CheckEndpoint(ctx context.Context) error {
	url := e.baseURL + "/query"
	body, _ := json.Marshal(QueryRequest{Query: "ping", SessionID: "healthcheck", Remarks: []string{}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return &QueryError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &QueryError{URL: url, StatusCode: resp.StatusCode}
	}
	return nil
}
