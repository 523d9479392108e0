package internal

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultSessionTitle is used when a session's first message has no content.
const DefaultSessionTitle = "New Chat"

// TitleMaxLen is how many characters of the first message survive into
// the title.
const TitleMaxLen = 50

// Session is the lightweight summary of an archived conversation. The
// message bodies live separately, keyed by the session ID.
type Session struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Timestamp    int64  `json:"timestamp" yaml:"timestamp"` // last touched, epoch millis
	MessageCount int    `json:"messageCount" yaml:"messageCount"`
}

// GetTimestamp returns the last-touched time as a time.Time.
func (s *Session) GetTimestamp() time.Time {
	return time.Unix(0, s.Timestamp*int64(time.Millisecond))
}

// Transcript pairs a session summary with its full message list. It is
// the unit of export.
type Transcript struct {
	Session  Session   `json:"session" yaml:"session"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// DeriveTitle builds a session title from the first message. Long content
// is cut at 50 characters with a literal "..." appended; empty content
// falls back to the default placeholder. The cut counts characters, not
// bytes, so multibyte content is never split mid-rune.
func DeriveTitle(msgs []Message) string {
	if len(msgs) == 0 {
		return DefaultSessionTitle
	}
	content := msgs[0].Content
	if content == "" {
		return DefaultSessionTitle
	}
	if runes := []rune(content); len(runes) > TitleMaxLen {
		content = string(runes[:TitleMaxLen])
	}
	return content + "..."
}

// ParseSummaries parses a stored JSON summary list.
func ParseSummaries(value string) ([]Session, error) {
	var summaries []Session
	if err := json.Unmarshal([]byte(value), &summaries); err != nil {
		return nil, fmt.Errorf("failed to parse session list JSON: %w", err)
	}
	return summaries, nil
}

// UpsertSummary replaces an existing entry in place, or prepends a new one.
// Existing entries keep their position; only brand new sessions go to the
// front of the list.
func UpsertSummary(summaries []Session, entry Session) []Session {
	for i := range summaries {
		if summaries[i].ID == entry.ID {
			out := make([]Session, len(summaries))
			copy(out, summaries)
			out[i] = entry
			return out
		}
	}
	out := make([]Session, 0, len(summaries)+1)
	out = append(out, entry)
	out = append(out, summaries...)
	return out
}

// RemoveSummary drops the entry with the given ID, if present.
func RemoveSummary(summaries []Session, id string) []Session {
	out := make([]Session, 0, len(summaries))
	for _, s := range summaries {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// FindSummary returns the index of the entry with the given ID, or -1.
func FindSummary(summaries []Session, id string) int {
	for i := range summaries {
		if summaries[i].ID == id {
			return i
		}
	}
	return -1
}

// DropEmptySummaries filters out entries with no messages. An empty
// session must never appear in the archived list.
func DropEmptySummaries(summaries []Session) []Session {
	out := make([]Session, 0, len(summaries))
	for _, s := range summaries {
		if s.MessageCount > 0 {
			out = append(out, s)
		}
	}
	return out
}

// DedupeSummaries keeps the first entry per session ID. The list is
// newest-first, so the first occurrence is the authoritative one.
func DedupeSummaries(summaries []Session) []Session {
	seen := make(map[string]bool)
	out := make([]Session, 0, len(summaries))
	for _, s := range summaries {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}
