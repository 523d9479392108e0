package internal

// Wallet is the read-only view of an external wallet connection. The core
// uses it to enrich outgoing queries and to let a swap quote target a
// connected wallet; it never touches keys or signs anything.
type Wallet interface {
	Connected() bool
	Address() string
}

// StaticWallet is a Wallet with a fixed address, typically sourced from
// configuration. An empty address means not connected.
type StaticWallet struct {
	Addr string
}

func (w *StaticWallet) Connected() bool {
	return w != nil && w.Addr != ""
}

func (w *StaticWallet) Address() string {
	if w == nil {
		return ""
	}
	return w.Addr
}
