package internal

import (
	"time"

	"github.com/google/uuid"
)

// Controller is the session lifecycle state machine. It owns the active
// session id, the in-memory message list for that session, and the
// in-memory copy of the archived summary list, and it mediates every
// transition between them.
//
// All methods must be called from a single goroutine. Persistence writes
// complete before the method that issued them returns.
type Controller struct {
	store *SessionStore
	now   func() time.Time
	newID func() string

	activeID  string
	messages  []Message
	summaries []Session
}

// NewController creates a controller over the given store. Call
// Initialize before anything else.
func NewController(store *SessionStore) *Controller {
	return &Controller{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Initialize starts a fresh session and loads the archived summaries.
// The previously active session is never resumed; its history stays in
// storage and is reachable through the summary list.
func (c *Controller) Initialize() error {
	c.activeID = c.newID()
	c.messages = []Message{}
	if err := c.store.SetActiveSessionID(c.activeID); err != nil {
		return err
	}
	c.summaries = c.store.LoadSummaries()
	LogDebug("Initialized session %s with %d archived session(s)", c.activeID, len(c.summaries))
	return nil
}

// ActiveSessionID returns the current session id.
func (c *Controller) ActiveSessionID() string {
	return c.activeID
}

// Messages returns a copy of the active session's message list.
func (c *Controller) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessageCount returns the number of messages in the active session.
func (c *Controller) MessageCount() int {
	return len(c.messages)
}

// Summaries returns a copy of the archived session list, newest first.
func (c *Controller) Summaries() []Session {
	out := make([]Session, len(c.summaries))
	copy(out, c.summaries)
	return out
}

// StartNewSession archives the current session when it has messages
// (removes its summary otherwise) and switches to a fresh empty session.
// The new session is not added to the summary list until it gains a
// message.
func (c *Controller) StartNewSession() error {
	if len(c.messages) > 0 {
		if err := c.archive(); err != nil {
			return err
		}
	} else if err := c.dropActiveSummary(); err != nil {
		return err
	}

	c.activeID = c.newID()
	c.messages = []Message{}
	return c.store.SetActiveSessionID(c.activeID)
}

// SelectSession switches to an archived session. Selecting the active
// session is a no-op with no storage writes. Before switching away from a
// session that has messages and an existing summary, that summary's
// message count is refreshed in place; its title and timestamp are kept.
func (c *Controller) SelectSession(targetID string) error {
	if targetID == c.activeID {
		return nil
	}

	if len(c.messages) > 0 {
		if i := FindSummary(c.summaries, c.activeID); i >= 0 {
			c.summaries[i].MessageCount = len(c.messages)
			if err := c.store.SaveSummaries(c.summaries); err != nil {
				return err
			}
		}
	}

	c.activeID = targetID
	c.messages = c.store.LoadMessages(targetID)
	return c.store.SetActiveSessionID(targetID)
}

// AppendMessage appends a message to the given session and persists its
// message list. When the session is still active the in-memory list is
// the source of truth; when a response arrives for a session the user has
// already switched away from, the message goes to that session's stored
// history only, so it never corrupts the active conversation.
func (c *Controller) AppendMessage(sessionID string, msg Message) error {
	if sessionID == c.activeID {
		// The bound applies in memory too, so message counts archived
		// later always match the stored list.
		c.messages = c.store.BoundMessages(append(c.messages, msg))
		return c.store.SaveMessages(sessionID, c.messages)
	}

	LogWarn("Session %s is no longer active; appending to its stored history only", sessionID)
	stored := c.store.LoadMessages(sessionID)
	stored = append(stored, msg)
	return c.store.SaveMessages(sessionID, stored)
}

// Shutdown is the teardown hook. It flushes the active session's messages
// and archives or removes its summary. Safe to call more than once, and
// safe to skip entirely: every write it performs is independently
// idempotent, so an abrupt termination cannot corrupt stored state.
func (c *Controller) Shutdown() error {
	if c.activeID == "" {
		return nil
	}
	if len(c.messages) > 0 {
		if err := c.store.SaveMessages(c.activeID, c.messages); err != nil {
			return err
		}
		return c.archive()
	}
	return c.dropActiveSummary()
}

// archive inserts or refreshes the active session's summary. New sessions
// go to the front of the list; existing entries are replaced in place.
func (c *Controller) archive() error {
	entry := Session{
		ID:           c.activeID,
		Title:        DeriveTitle(c.messages),
		Timestamp:    c.now().UnixMilli(),
		MessageCount: len(c.messages),
	}
	c.summaries = DropEmptySummaries(UpsertSummary(c.summaries, entry))
	return c.store.SaveSummaries(c.summaries)
}

// dropActiveSummary removes the active session from the summary list. It
// only writes when the list actually changed.
func (c *Controller) dropActiveSummary() error {
	if FindSummary(c.summaries, c.activeID) < 0 {
		return nil
	}
	c.summaries = RemoveSummary(c.summaries, c.activeID)
	return c.store.SaveSummaries(c.summaries)
}
