// Package ledger tracks staked balances per wallet for the reference staking endpoint.
package ledger

import (
	"context"
	"errors"
	"sync"
)

var ErrInvalidAmount = errors.New("amount must be positive")

// Ledger is the economic layer behind POST /api/chain/stake.
type Ledger interface {
	Stake(ctx context.Context, walletID string, amount float64) (float64, error)
	Balance(ctx context.Context, walletID string) (float64, error)
}

type Memory struct {
	mu     sync.RWMutex
	stakes map[string]float64
}

func NewMemory() *Memory {
	return &Memory{stakes: make(map[string]float64)}
}

func (m *Memory) Stake(_ context.Context, walletID string, amount float64) (float64, error) {
	if !(amount > 0) {
		return 0, ErrInvalidAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stakes[walletID] += amount
	return m.stakes[walletID], nil
}

func (m *Memory) Balance(_ context.Context, walletID string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stakes[walletID], nil
}
