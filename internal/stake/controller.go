// Package stake holds the stake dialog controller: the draft, the open and
// loading flags, and the submit/resolve flow around one staking request.
package stake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/RoriStake/internal/chain"
	"github.com/Rorical/RoriStake/internal/notify"
)

const DefaultAmount = 10

const (
	MsgEnterWalletID   = "Enter wallet ID"
	MsgStaked          = "Staked successfully!"
	MsgUnexpectedReply = "Unexpected response: "
	MsgStakeFailed     = "Stake failed: "
)

var (
	ErrEmptyWalletID = errors.New("wallet id is empty")
	ErrInFlight      = errors.New("a stake request is already in flight")
)

// OnStakeFunc is called once per successful stake.
type OnStakeFunc func(walletID string, amount float64)

// Submitter sends one stake request to the remote endpoint.
type Submitter interface {
	Stake(ctx context.Context, req chain.StakeRequest) (chain.StakeResponse, error)
}

// Submission identifies a request that left the dialog.
type Submission struct {
	ID       string
	WalletID string
	Amount   float64
}

func (s Submission) Request() chain.StakeRequest {
	return chain.StakeRequest{WalletID: s.WalletID, Amount: s.Amount}
}

// Outcome is how a finished submission was classified.
type Outcome int

const (
	OutcomeStaked Outcome = iota
	OutcomeRejected
	OutcomeTransportError
)

// State is a snapshot of the dialog.
type State struct {
	IsOpen     bool
	Loading    bool
	WalletID   string
	AmountText string
	Amount     float64
}

type Controller struct {
	mu         sync.Mutex
	isOpen     bool
	loading    bool
	walletID   string
	amountText string
	amount     float64

	onStake   OnStakeFunc
	sink      notify.Sink
	submitter Submitter
}

func New(onStake OnStakeFunc, sink notify.Sink, submitter Submitter) *Controller {
	c := &Controller{
		onStake:   onStake,
		sink:      sink,
		submitter: submitter,
	}
	c.resetDraft()
	return c
}

func (c *Controller) resetDraft() {
	c.walletID = ""
	c.amount = DefaultAmount
	c.amountText = formatAmount(DefaultAmount)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		IsOpen:     c.isOpen,
		Loading:    c.loading,
		WalletID:   c.walletID,
		AmountText: c.amountText,
		Amount:     c.amount,
	}
}

func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		c.resetDraft()
	}
	c.isOpen = true
}

// Cancel closes the dialog and drops the draft. An in-flight request is not aborted.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = false
	c.resetDraft()
}

func (c *Controller) UpdateWalletID(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.walletID = text
}

func (c *Controller) UpdateAmount(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.amountText = text
	c.amount = ParseAmount(text)
}

// ParseAmount converts user input to a stake amount. Anything that is not a
// finite non-zero number becomes DefaultAmount.
func ParseAmount(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return DefaultAmount
	}
	return v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Begin validates the draft and marks the dialog as loading. The caller owns
// the returned submission and must hand its result to Resolve.
func (c *Controller) Begin() (Submission, error) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return Submission{}, ErrInFlight
	}
	if strings.TrimSpace(c.walletID) == "" {
		c.mu.Unlock()
		c.notify(notify.Error, MsgEnterWalletID)
		return Submission{}, ErrEmptyWalletID
	}
	c.loading = true
	sub := Submission{
		ID:       uuid.NewString(),
		WalletID: c.walletID,
		Amount:   c.amount,
	}
	c.mu.Unlock()
	return sub, nil
}

// Resolve finishes a submission started by Begin. Loading is cleared for
// every outcome.
func (c *Controller) Resolve(sub Submission, res chain.StakeResponse, err error) Outcome {
	c.mu.Lock()
	c.loading = false

	switch {
	case err != nil:
		c.mu.Unlock()
		c.notify(notify.Error, MsgStakeFailed+describeError(err))
		return OutcomeTransportError
	case !res.Staked():
		c.mu.Unlock()
		c.notify(notify.Error, MsgUnexpectedReply+res.Payload())
		return OutcomeRejected
	}

	c.isOpen = false
	c.resetDraft()
	c.mu.Unlock()

	if c.onStake != nil {
		c.onStake(sub.WalletID, sub.Amount)
	}
	c.notify(notify.Success, MsgStaked)
	return OutcomeStaked
}

// Confirm runs Begin, the request and Resolve on the calling goroutine.
func (c *Controller) Confirm(ctx context.Context) (Outcome, error) {
	sub, err := c.Begin()
	if err != nil {
		return 0, err
	}
	if c.submitter == nil {
		return c.Resolve(sub, chain.StakeResponse{}, errors.New("no staking endpoint configured")), nil
	}
	res, err := c.submitter.Stake(ctx, sub.Request())
	return c.Resolve(sub, res, err), nil
}

func (c *Controller) notify(level notify.Level, text string) {
	if c.sink == nil {
		return
	}
	c.sink.Notify(notify.New(level, text))
}

func describeError(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	if raw, jerr := json.Marshal(err); jerr == nil && string(raw) != "{}" {
		return string(raw)
	}
	return fmt.Sprintf("%#v", err)
}
