package internal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ActionSwapQuote is the one action tag the client knows how to render.
// Any other tag is carried through storage untouched.
const ActionSwapQuote = "swap_quote"

// Message is a single turn in a conversation. Messages are immutable once
// created; identity is the ID.
type Message struct {
	ID        string       `json:"id" yaml:"id"`
	Content   string       `json:"content" yaml:"content"`
	Role      Role         `json:"role" yaml:"role"`
	Timestamp int64        `json:"timestamp" yaml:"timestamp"` // epoch millis
	Actions   []UserAction `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// UserAction is a tagged payload attached to an assistant message, e.g. a
// token swap quote. The payload stays raw so unrecognized tags survive a
// store/load round trip verbatim.
type UserAction struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"json_data,omitempty"`
}

// MarshalYAML renders the raw payload as structured YAML instead of a
// byte sequence.
func (a UserAction) MarshalYAML() (interface{}, error) {
	var payload interface{}
	if len(a.Payload) > 0 {
		if err := json.Unmarshal(a.Payload, &payload); err != nil {
			payload = string(a.Payload)
		}
	}
	return struct {
		Action  string      `yaml:"action"`
		Payload interface{} `yaml:"json_data,omitempty"`
	}{Action: a.Action, Payload: payload}, nil
}

// TokenInfo is display metadata for one side of a swap quote.
type TokenInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Icon     string `json:"icon"`
	Decimals int    `json:"decimals"`
}

// SwapQuote is the decoded payload of a swap_quote action.
type SwapQuote struct {
	InputMint       string    `json:"input_mint"`
	OutputMint      string    `json:"output_mint"`
	InAmount        string    `json:"in_amount,omitempty"`
	OutAmount       string    `json:"out_amount,omitempty"`
	SlippageBps     int       `json:"slippage_bps"`
	InputTokenInfo  TokenInfo `json:"input_token_info,omitempty"`
	OutputTokenInfo TokenInfo `json:"output_token_info,omitempty"`
}

// SwapQuote decodes the action payload when the tag is swap_quote.
// Returns false for any other tag.
func (a UserAction) SwapQuote() (*SwapQuote, bool, error) {
	if a.Action != ActionSwapQuote {
		return nil, false, nil
	}
	var quote SwapQuote
	if err := json.Unmarshal(a.Payload, &quote); err != nil {
		return nil, true, fmt.Errorf("failed to parse swap quote payload: %w", err)
	}
	return &quote, true, nil
}

// GetTimestamp returns the message time as a time.Time.
func (m *Message) GetTimestamp() time.Time {
	return time.Unix(0, m.Timestamp*int64(time.Millisecond))
}

// ParseMessages parses a stored JSON message list.
func ParseMessages(value string) ([]Message, error) {
	var msgs []Message
	if err := json.Unmarshal([]byte(value), &msgs); err != nil {
		return nil, fmt.Errorf("failed to parse message list JSON: %w", err)
	}
	return msgs, nil
}
