package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriStake/internal/chain"
	"github.com/Rorical/RoriStake/internal/config"
	"github.com/Rorical/RoriStake/internal/eventbus"
	"github.com/Rorical/RoriStake/internal/stake"
)

type blockingSubmitter struct {
	release chan struct{}
	res     chain.StakeResponse
}

func (b *blockingSubmitter) Stake(ctx context.Context, req chain.StakeRequest) (chain.StakeResponse, error) {
	select {
	case <-b.release:
		return b.res, nil
	case <-ctx.Done():
		return chain.StakeResponse{}, ctx.Err()
	}
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("RORISTAKE_HOME", t.TempDir())
	t.Setenv("RORISTAKE_BASE_URL", "")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func nextResult(t *testing.T, eb *eventbus.EventBus) eventbus.StakeResultEvent {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-eb.CoreToUI():
			if res, ok := ev.(eventbus.StakeResultEvent); ok {
				return res
			}
		case <-timeout:
			t.Fatal("no stake result")
		}
	}
}

func TestServiceDeliversResult(t *testing.T) {
	eb := eventbus.NewEventBus()
	sub := &blockingSubmitter{release: make(chan struct{}), res: chain.StakeResponse{Status: "staked"}}
	svc := NewStakeService(loadConfig(t), sub, eb, nil)
	svc.Start()
	defer svc.Stop()
	require.True(t, svc.IsReady())

	submission := stake.Submission{ID: "s1", WalletID: "0xabc", Amount: 42}
	require.NoError(t, eb.SendToCore(eventbus.SubmitStakeEvent{Submission: submission}))

	require.Eventually(t, func() bool { return svc.InFlight() == 1 }, time.Second, 5*time.Millisecond)
	close(sub.release)

	res := nextResult(t, eb)
	require.Equal(t, submission, res.Submission)
	require.NoError(t, res.Err)
	require.True(t, res.Response.Staked())
	require.Eventually(t, func() bool { return svc.InFlight() == 0 }, time.Second, 5*time.Millisecond)
}

func TestResultSurvivesFullChannelAndOpenBreaker(t *testing.T) {
	eb := eventbus.NewEventBus()
	sub := &blockingSubmitter{release: make(chan struct{}), res: chain.StakeResponse{Status: "staked"}}
	svc := NewStakeService(loadConfig(t), sub, eb, nil)
	svc.Start()
	defer svc.Stop()

	submission := stake.Submission{ID: "s4", WalletID: "0xabc", Amount: 10}
	require.NoError(t, eb.SendToCore(eventbus.SubmitStakeEvent{Submission: submission}))
	require.Eventually(t, func() bool { return svc.InFlight() == 1 }, time.Second, 5*time.Millisecond)

	// Fill the UI channel until the breaker opens.
	for i := 0; i < 110; i++ {
		_ = eb.SendToUI(eventbus.StatusEvent{})
	}
	require.Equal(t, eventbus.CircuitOpen, eb.GetCircuitBreakerState())

	close(sub.release)
	res := nextResult(t, eb)
	require.Equal(t, submission, res.Submission)
	require.True(t, res.Response.Staked())
	require.Eventually(t, func() bool {
		return eb.GetCircuitBreakerState() == eventbus.CircuitClosed
	}, time.Second, 5*time.Millisecond)
}

func TestStopCancelsOutstandingRequest(t *testing.T) {
	eb := eventbus.NewEventBus()
	sub := &blockingSubmitter{release: make(chan struct{})}
	svc := NewStakeService(loadConfig(t), sub, eb, nil)
	svc.Start()

	require.NoError(t, eb.SendToCore(eventbus.SubmitStakeEvent{Submission: stake.Submission{ID: "s2", WalletID: "w"}}))
	require.Eventually(t, func() bool { return svc.InFlight() == 1 }, time.Second, 5*time.Millisecond)

	svc.Stop()
	res := nextResult(t, eb)
	require.ErrorIs(t, res.Err, context.Canceled)
}

func TestServiceWithoutSubmitter(t *testing.T) {
	eb := eventbus.NewEventBus()
	svc := NewStakeService(loadConfig(t), nil, eb, nil)
	require.False(t, svc.IsReady())
	svc.Start()
	defer svc.Stop()

	require.NoError(t, eb.SendToCore(eventbus.SubmitStakeEvent{Submission: stake.Submission{ID: "s3", WalletID: "w"}}))
	res := nextResult(t, eb)
	require.Error(t, res.Err)
}

func TestWelcomeLines(t *testing.T) {
	lines := WelcomeLines(loadConfig(t))
	require.Equal(t, "-- RORISTAKE --", lines[0])
	require.Contains(t, lines[1], "Active Profile: default")
	require.Contains(t, lines[1], config.DefaultBaseURL)
}
