package testutil

// Fixture JSON used across storage tests. Kept as raw strings so tests
// exercise the real parse path.

// SampleMessagesJSON is a two-message user/assistant exchange.
const SampleMessagesJSON = `[
  {"id":"m1","content":"hello","role":"user","timestamp":1000},
  {"id":"m2","content":"hi there","role":"assistant","timestamp":2000}
]`

// SampleSummariesJSON is a two-session archive list, newest first.
const SampleSummariesJSON = `[
  {"id":"s2","title":"second...","timestamp":2000,"messageCount":4},
  {"id":"s1","title":"first...","timestamp":1000,"messageCount":2}
]`

// SampleSwapActionJSON is an assistant message carrying a swap quote.
const SampleSwapActionJSON = `[
  {"id":"m1","content":"swap 1 SOL","role":"user","timestamp":1000},
  {"id":"m2","content":"Here is a quote","role":"assistant","timestamp":2000,
   "actions":[{"action":"swap_quote","json_data":{
     "input_mint":"So11111111111111111111111111111111111111112",
     "output_mint":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
     "in_amount":"1000000000","slippage_bps":50}}]}
]`
