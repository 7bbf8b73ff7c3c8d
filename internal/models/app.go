package models

import (
	"time"

	"github.com/Rorical/RoriStake/internal/notify"
	"github.com/Rorical/RoriStake/internal/stake"
)

// Focus is the dialog control receiving key input.
type Focus int

const (
	FocusWalletID Focus = iota
	FocusAmount
	FocusConfirm
	FocusCancel
	focusCount
)

func (f Focus) Next() Focus { return (f + 1) % focusCount }

func (f Focus) Prev() Focus { return (f + focusCount - 1) % focusCount }

// StakeRecord is one successful stake shown in the history.
type StakeRecord struct {
	WalletID string
	Amount   float64
	At       time.Time
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Header       []string          // Welcome lines from core
	Stakes       []StakeRecord     // Successful stakes, oldest first
	Dialog       *stake.Controller // Stake dialog state and flow
	Toasts       *notify.Queue     // Visible notifications
	Focus        Focus             // Focused dialog control
	Status       string            // Status bar text
	InFlight     int               // Requests the core is still waiting on
	ServiceReady bool              // Whether a staking endpoint is configured
	LoadingDots  int               // Animation counter for loading dots
	Width        int               // Terminal width
	Height       int               // Terminal height
}

// RecordStake is the dialog's success callback target.
func (m *AppModel) RecordStake(walletID string, amount float64) {
	m.Stakes = append(m.Stakes, StakeRecord{WalletID: walletID, Amount: amount, At: time.Now()})
}
