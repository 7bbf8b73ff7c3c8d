package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriStake/internal/api"
	"github.com/Rorical/RoriStake/internal/chain"
	"github.com/Rorical/RoriStake/internal/config"
	"github.com/Rorical/RoriStake/internal/ledger"
	"github.com/Rorical/RoriStake/internal/notify"
	"github.com/Rorical/RoriStake/internal/stake"
)

func newStakeEndpoint(t *testing.T) (*chain.Client, *ledger.Memory) {
	t.Helper()
	l := ledger.NewMemory()
	srv := httptest.NewServer(api.NewServer(nil, l, nil).Router())
	t.Cleanup(srv.Close)
	return chain.New(srv.URL, time.Second), l
}

func TestRunStakeSuccess(t *testing.T) {
	client, l := newStakeEndpoint(t)
	var out bytes.Buffer

	err := runStake(context.Background(), client, notify.Writer{W: &out}, "0xabc", "42")
	require.NoError(t, err)
	require.Contains(t, out.String(), "[info] Staked 0xabc: 42")
	require.Contains(t, out.String(), "[success] "+stake.MsgStaked)

	bal, err := l.Balance(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Equal(t, 42.0, bal)
}

func TestRunStakeDefaultAmount(t *testing.T) {
	client, l := newStakeEndpoint(t)
	require.NoError(t, runStake(context.Background(), client, notify.Writer{W: &bytes.Buffer{}}, "w", ""))
	bal, _ := l.Balance(context.Background(), "w")
	require.Equal(t, 10.0, bal)
}

func TestRunStakeFailures(t *testing.T) {
	client, _ := newStakeEndpoint(t)
	var out bytes.Buffer

	err := runStake(context.Background(), client, notify.Writer{W: &out}, "  ", "5")
	require.ErrorIs(t, err, stake.ErrEmptyWalletID)
	require.Contains(t, out.String(), stake.MsgEnterWalletID)

	out.Reset()
	err = runStake(context.Background(), client, notify.Writer{W: &out}, "0xdef", "-1")
	require.Error(t, err)
	require.Contains(t, out.String(), stake.MsgUnexpectedReply)
}

func TestRemoveProfile(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[string]config.Profile{
			"default": {BaseURL: "http://a"},
			"prod":    {BaseURL: "http://b"},
		},
		ActiveProfile: "prod",
	}
	removeProfile(cfg, "prod")
	require.Equal(t, "default", cfg.ActiveProfile)

	removeProfile(cfg, "default")
	require.Equal(t, "default", cfg.ActiveProfile)
	require.Equal(t, config.DefaultBaseURL, cfg.Profiles["default"].BaseURL)
}

func TestValidators(t *testing.T) {
	require.NoError(t, validateBaseURL("http://localhost:8000"))
	require.Error(t, validateBaseURL("localhost"))
	require.NoError(t, validateTimeout("5"))
	require.Error(t, validateTimeout("0"))
	require.Error(t, validateTimeout("x"))
}

func TestApplyServeFlags(t *testing.T) {
	sc := config.ServerConfig{Addr: ":8000", MetricsAddr: ":9095"}
	require.NoError(t, serveCmd.Flags().Set("addr", ":8100"))
	t.Cleanup(func() { _ = serveCmd.Flags().Set("addr", ":8000") })

	applyServeFlags(serveCmd, &sc)
	require.Equal(t, ":8100", sc.Addr)
	require.Equal(t, ":9095", sc.MetricsAddr)
}
