package internal

import (
	"fmt"
	"io"
)

// DefaultRPCEndpoint is the RPC URL handed to the swap widget when the
// configuration does not override it.
const DefaultRPCEndpoint = "https://api.mainnet-beta.solana.com"

// WidgetFormProps are the form parameters of an embedded swap widget.
// Field names follow the widget's init contract.
type WidgetFormProps struct {
	FixedInputMint      bool   `json:"fixedInputMint"`
	FixedOutputMint     bool   `json:"fixedOutputMint"`
	InitialInputMint    string `json:"initialInputMint,omitempty"`
	InitialOutputMint   string `json:"initialOutputMint,omitempty"`
	InitialAmount       string `json:"initialAmount,omitempty"`
	InitialOutputAmount string `json:"initialOutputAmount,omitempty"`
	SlippageBps         int    `json:"slippageBps"`
}

// WidgetConfig is everything a swap widget needs to initialize.
type WidgetConfig struct {
	DisplayMode        string          `json:"displayMode"`
	IntegratedTargetID string          `json:"integratedTargetId"`
	Endpoint           string          `json:"endpoint"`
	FormProps          WidgetFormProps `json:"formProps"`
}

// SwapWidget is the external widget capability. The core only builds a
// config from a swap quote and hands it over; the widget's internal
// behavior (rendering, wallet prompts, the actual transaction) is not
// managed here.
type SwapWidget interface {
	Init(cfg WidgetConfig) error
}

// BuildWidgetConfig turns a swap quote into widget init parameters. Both
// mints are pinned so the quote the assistant produced is what the user
// acts on. An empty rpcEndpoint falls back to the default.
func BuildWidgetConfig(quote *SwapQuote, rpcEndpoint string) WidgetConfig {
	if rpcEndpoint == "" {
		rpcEndpoint = DefaultRPCEndpoint
	}
	slippage := quote.SlippageBps
	if slippage == 0 {
		slippage = 50
	}
	return WidgetConfig{
		DisplayMode:        "integrated",
		IntegratedTargetID: "deepsense-swap-widget",
		Endpoint:           rpcEndpoint,
		FormProps: WidgetFormProps{
			FixedInputMint:      true,
			FixedOutputMint:     true,
			InitialInputMint:    quote.InputMint,
			InitialOutputMint:   quote.OutputMint,
			InitialAmount:       quote.InAmount,
			InitialOutputAmount: quote.OutAmount,
			SlippageBps:         slippage,
		},
	}
}

// TextWidget is the terminal stand-in for the embedded widget: it prints
// the quote so the user can act on it elsewhere.
type TextWidget struct {
	W io.Writer
}

func (t *TextWidget) Init(cfg WidgetConfig) error {
	in := cfg.FormProps.InitialInputMint
	out := cfg.FormProps.InitialOutputMint
	fmt.Fprintf(t.W, "Swap quote: %s -> %s (slippage %.2f%%)\n", in, out, float64(cfg.FormProps.SlippageBps)/100)
	if cfg.FormProps.InitialAmount != "" {
		fmt.Fprintf(t.W, "  in amount:  %s\n", cfg.FormProps.InitialAmount)
	}
	if cfg.FormProps.InitialOutputAmount != "" {
		fmt.Fprintf(t.W, "  out amount: %s\n", cfg.FormProps.InitialOutputAmount)
	}
	fmt.Fprintf(t.W, "  rpc: %s\n", cfg.Endpoint)
	return nil
}
