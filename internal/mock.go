package internal

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
)

// Well-known mints used for the canned swap suggestion.
const (
	SOLMint  = "So11111111111111111111111111111111111111112"
	USDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// Selector picks one of n canned responses. Injectable so tests can force
// a deterministic choice; the default is uniformly random.
type Selector func(n int) int

// DefaultSelector is the production selector.
func DefaultSelector(n int) int {
	return rand.Intn(n)
}

var mockResponseTemplates = []string{
	`# Thank you for your message!

I understand you said: "%s"

Here's a **markdown response** to demonstrate the formatting:

## Key Points:
- This is a *mock response*
- It supports **bold text**
- And even ` + "`code snippets`" + `

> This is a blockquote to show different formatting options.

Would you like to continue our conversation?`,
	`## Great question!

Your message "%s" is interesting. Let me provide a detailed response:

### Analysis:
1. **First point**: This demonstrates numbered lists
2. **Second point**: With proper formatting
3. **Third point**: And clear structure

What would you like to explore next?`,
	`# Hello there!

Thanks for your message: *"%s"*

## Here's what I can help with:

- Markdown formatting
- Persistent conversations
- Token swap quotes

> **Note:** This is a mock response shown while the assistant service is unreachable.

How can I assist you further?`,
}

// MockResponse produces a canned assistant reply for the given user text.
func MockResponse(userText string, pick Selector) string {
	if pick == nil {
		pick = DefaultSelector
	}
	tmpl := mockResponseTemplates[pick(len(mockResponseTemplates))%len(mockResponseTemplates)]
	return fmt.Sprintf(tmpl, userText)
}

// HasSwapIntent reports whether the user's text looks like a swap request.
func HasSwapIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range []string{"swap", "exchange", "trade"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MockSwapAction builds the canned SOL to USDC swap suggestion attached to
// mock replies when the user asked about swapping.
func MockSwapAction() UserAction {
	quote := SwapQuote{
		InputMint:   SOLMint,
		OutputMint:  USDCMint,
		InAmount:    "1000000000", // 1 SOL in lamports
		SlippageBps: 50,
		InputTokenInfo: TokenInfo{
			ID:       SOLMint,
			Name:     "Solana",
			Symbol:   "SOL",
			Icon:     "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/So11111111111111111111111111111111111111112/logo.png",
			Decimals: 9,
		},
		OutputTokenInfo: TokenInfo{
			ID:       USDCMint,
			Name:     "USD Coin",
			Symbol:   "USDC",
			Icon:     "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v/logo.png",
			Decimals: 6,
		},
	}
	payload, _ := json.Marshal(quote)
	return UserAction{Action: ActionSwapQuote, Payload: payload}
}
