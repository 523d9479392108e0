package internal

import (
	"strings"
	"testing"
)

func TestMockResponse(t *testing.T) {
	for i := range mockResponseTemplates {
		i := i
		got := MockResponse("hello world", func(n int) int { return i })
		if !strings.Contains(got, "hello world") {
			t.Errorf("Template %d does not echo the user text: %q", i, got)
		}
	}

	// nil selector falls back to the random one without panicking.
	if got := MockResponse("anything", nil); got == "" {
		t.Error("MockResponse() with nil selector returned empty string")
	}

	// Out-of-range picks wrap instead of panicking.
	if got := MockResponse("x", func(n int) int { return n + 7 }); got == "" {
		t.Error("MockResponse() with out-of-range selector returned empty string")
	}
}

func TestHasSwapIntent(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"I want to swap SOL for USDC", true},
		{"SWAP now", true},
		{"can I exchange tokens?", true},
		{"Trade me 1 SOL", true},
		{"what's the weather", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasSwapIntent(tt.text); got != tt.want {
			t.Errorf("HasSwapIntent(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMockSwapAction(t *testing.T) {
	action := MockSwapAction()
	if action.Action != ActionSwapQuote {
		t.Fatalf("Action = %q, want %q", action.Action, ActionSwapQuote)
	}

	quote, ok, err := action.SwapQuote()
	if err != nil || !ok {
		t.Fatalf("SwapQuote() = (%v, %v), want a decoded quote", ok, err)
	}
	if quote.InputMint != SOLMint {
		t.Errorf("InputMint = %q, want SOL", quote.InputMint)
	}
	if quote.OutputMint != USDCMint {
		t.Errorf("OutputMint = %q, want USDC", quote.OutputMint)
	}
	if quote.SlippageBps != 50 {
		t.Errorf("SlippageBps = %d, want 50", quote.SlippageBps)
	}
	if quote.InputTokenInfo.Symbol != "SOL" || quote.OutputTokenInfo.Symbol != "USDC" {
		t.Errorf("Token symbols = %q/%q, want SOL/USDC", quote.InputTokenInfo.Symbol, quote.OutputTokenInfo.Symbol)
	}
}
