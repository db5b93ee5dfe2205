package room

import "sync"

// Wallet holds each human player's bankroll across rooms. Accounts open
// lazily with the starting balance.
type Wallet struct {
	mu       sync.Mutex
	initial  int
	balances map[string]int
}

// NewWallet returns a wallet whose accounts start at initial.
func NewWallet(initial int) *Wallet {
	return &Wallet{initial: initial, balances: make(map[string]int)}
}

// Balance returns user's current balance.
func (w *Wallet) Balance(user string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balanceLocked(user)
}

// Add changes user's balance by delta and returns the new balance. Balances
// may go negative; the table does not enforce credit.
func (w *Wallet) Add(user string, delta int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := w.balanceLocked(user) + delta
	w.balances[user] = b
	return b
}

func (w *Wallet) balanceLocked(user string) int {
	b, ok := w.balances[user]
	if !ok {
		b = w.initial
		w.balances[user] = b
	}
	return b
}

// Initial returns the balance new accounts open with.
func (w *Wallet) Initial() int {
	return w.initial
}
