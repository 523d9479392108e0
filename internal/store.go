package internal

import (
	"encoding/json"
	"fmt"
)

// Storage keys. Message lists are keyed per session under a fixed prefix,
// mirroring the layout the web client used.
const (
	KeyActiveSessionID  = "activeSessionId"
	KeyPreviousSessions = "previousSessions"
	KeyMessagesPrefix   = "sessionMessages:"
)

// KV is the narrow interface the Session Store needs from its backing
// store. SQLiteKV is the durable implementation; MemoryKV backs tests.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
	Close() error
}

// SessionStore mediates all reads and writes of chat state: the active
// session id, per-session message lists, and the archived summary list.
// Reads that fail to parse degrade to empty collections and are logged;
// they never surface to the caller.
type SessionStore struct {
	kv KV

	// Zero disables the bound.
	maxSessions int
	maxMessages int
}

// NewSessionStore creates a store over the given backend. maxSessions caps
// the archived summary list and maxMessages caps each stored message list;
// oldest entries are dropped when a save exceeds the bound.
func NewSessionStore(kv KV, maxSessions, maxMessages int) *SessionStore {
	return &SessionStore{kv: kv, maxSessions: maxSessions, maxMessages: maxMessages}
}

// MessagesKey returns the storage key for a session's message list.
func MessagesKey(sessionID string) string {
	return KeyMessagesPrefix + sessionID
}

// LoadMessages reads a session's stored message list. Absent or corrupt
// data yields an empty list.
func (s *SessionStore) LoadMessages(sessionID string) []Message {
	value, ok, err := s.kv.Get(MessagesKey(sessionID))
	if err != nil {
		LogError("Failed to read messages for session %s: %v", sessionID, err)
		return []Message{}
	}
	if !ok {
		return []Message{}
	}

	msgs, err := ParseMessages(value)
	if err != nil {
		LogError("Failed to parse messages for session %s: %v", sessionID, err)
		return []Message{}
	}
	return msgs
}

// BoundMessages applies the configured message bound, keeping the newest
// tail. Callers that hold a message list in memory use it so their copy
// never drifts from what SaveMessages will persist.
func (s *SessionStore) BoundMessages(msgs []Message) []Message {
	if s.maxMessages > 0 && len(msgs) > s.maxMessages {
		return msgs[len(msgs)-s.maxMessages:]
	}
	return msgs
}

// SaveMessages overwrites a session's stored message list. When a message
// bound is configured, the oldest messages beyond it are dropped first.
func (s *SessionStore) SaveMessages(sessionID string, msgs []Message) error {
	msgs = s.BoundMessages(msgs)

	data, err := json.Marshal(msgs)
	if err != nil {
		return &StorageError{Key: MessagesKey(sessionID), Op: "encode", Err: err}
	}
	return s.kv.Set(MessagesKey(sessionID), string(data))
}

// LoadSummaries reads the archived session list. Absent or corrupt data
// yields an empty list.
func (s *SessionStore) LoadSummaries() []Session {
	value, ok, err := s.kv.Get(KeyPreviousSessions)
	if err != nil {
		LogError("Failed to read session list: %v", err)
		return []Session{}
	}
	if !ok {
		return []Session{}
	}

	summaries, err := ParseSummaries(value)
	if err != nil {
		LogError("Failed to parse session list: %v", err)
		return []Session{}
	}
	return summaries
}

// SaveSummaries overwrites the archived session list. Empty sessions are
// filtered out, duplicate ids collapse to their first (newest) entry, and
// the configured session bound drops the oldest entries.
func (s *SessionStore) SaveSummaries(summaries []Session) error {
	summaries = DropEmptySummaries(DedupeSummaries(summaries))
	if s.maxSessions > 0 && len(summaries) > s.maxSessions {
		summaries = summaries[:s.maxSessions]
	}

	data, err := json.Marshal(summaries)
	if err != nil {
		return &StorageError{Key: KeyPreviousSessions, Op: "encode", Err: err}
	}
	return s.kv.Set(KeyPreviousSessions, string(data))
}

// ActiveSessionID returns the persisted active session id, or "" if none.
func (s *SessionStore) ActiveSessionID() string {
	value, ok, err := s.kv.Get(KeyActiveSessionID)
	if err != nil {
		LogError("Failed to read active session id: %v", err)
		return ""
	}
	if !ok {
		return ""
	}
	return value
}

// SetActiveSessionID persists the active session id.
func (s *SessionStore) SetActiveSessionID(id string) error {
	return s.kv.Set(KeyActiveSessionID, id)
}

// SessionIDs lists every session id with a stored message list, whether or
// not it was ever archived.
func (s *SessionStore) SessionIDs() ([]string, error) {
	keys, err := s.kv.Keys(KeyMessagesPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list session keys: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, k[len(KeyMessagesPrefix):])
	}
	return ids, nil
}

// Close closes the backing store.
func (s *SessionStore) Close() error {
	return s.kv.Close()
}
