package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Rorical/RoriStake/internal/config"
	"github.com/Rorical/RoriStake/internal/eventbus"
	"github.com/Rorical/RoriStake/internal/stake"
)

// StakeService runs stake submissions off the UI loop and reports results
// back over the event bus.
type StakeService struct {
	config    *config.Config
	submitter stake.Submitter
	eventBus  *eventbus.EventBus
	log       *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	inFlight  atomic.Int32
}

func NewStakeService(cfg *config.Config, submitter stake.Submitter, eb *eventbus.EventBus, log *zap.Logger) *StakeService {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &StakeService{
		config:    cfg,
		submitter: submitter,
		eventBus:  eb,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start runs the core logic in a goroutine
func (s *StakeService) Start() {
	s.pushStatus()
	go s.eventLoop()
}

// Stop cancels outstanding requests and waits for their handlers to return.
func (s *StakeService) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *StakeService) IsReady() bool {
	return s.submitter != nil && s.config != nil && s.config.IsValid()
}

func (s *StakeService) InFlight() int {
	return int(s.inFlight.Load())
}

func (s *StakeService) eventLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *StakeService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitStakeEvent:
		s.wg.Add(1)
		s.inFlight.Add(1)
		s.pushStatus()
		go s.submit(e.Submission)
	}
}

func (s *StakeService) submit(sub stake.Submission) {
	defer s.wg.Done()

	log := s.log.With(
		zap.String("submission_id", sub.ID),
		zap.String("wallet_id", sub.WalletID),
		zap.Float64("amount", sub.Amount),
	)
	log.Info("stake submitted")

	result := eventbus.StakeResultEvent{Submission: sub}
	if s.submitter == nil {
		result.Err = fmt.Errorf("staking endpoint not configured")
	} else {
		result.Response, result.Err = s.submitter.Stake(s.ctx, sub.Request())
	}

	switch {
	case result.Err != nil:
		log.Warn("stake transport failure", zap.Error(result.Err))
	case result.Response.Staked():
		log.Info("stake accepted")
	default:
		log.Warn("stake rejected", zap.String("payload", result.Response.Payload()))
	}

	s.inFlight.Add(-1)
	// The dialog stays loading until it sees this result, so it bypasses the breaker.
	if err := s.eventBus.DeliverToUI(s.ctx, result); err != nil {
		log.Error("deliver stake result to UI", zap.Error(err))
	}
	s.pushStatus()
}

func (s *StakeService) pushStatus() {
	status := eventbus.StatusEvent{
		InFlight: s.InFlight(),
		Ready:    s.IsReady(),
	}
	switch {
	case !status.Ready:
		status.Text = "Staking endpoint not configured"
	case status.InFlight > 0:
		status.Text = "Staking"
	default:
		status.Text = "Ready"
	}
	if err := s.eventBus.SendToUI(status); err != nil {
		s.log.Warn("send status to UI", zap.Error(err))
	}
}

// WelcomeLines describes the active profile for the header of the UI.
func WelcomeLines(cfg *config.Config) []string {
	lines := []string{"-- RORISTAKE --"}
	if cfg == nil {
		return append(lines, "No configuration loaded")
	}
	if cfg.IsValid() {
		lines = append(lines, fmt.Sprintf("Active Profile: %s [%s]", cfg.ActiveProfile, cfg.GetBaseURL()))
	} else {
		lines = append(lines,
			fmt.Sprintf("Active Profile: %s [NOT CONFIGURED]", cfg.ActiveProfile),
			"• Run: roristake profile add <name>",
			"• Or edit: ~/.roristake/config.json",
		)
	}
	return append(lines, "Controls: 's' stake, 'x' dismiss toast, Ctrl+C or 'q' to exit")
}
