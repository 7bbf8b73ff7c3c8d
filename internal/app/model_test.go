package app

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriStake/internal/api"
	"github.com/Rorical/RoriStake/internal/chain"
	"github.com/Rorical/RoriStake/internal/config"
	"github.com/Rorical/RoriStake/internal/core"
	"github.com/Rorical/RoriStake/internal/dispatcher"
	"github.com/Rorical/RoriStake/internal/eventbus"
	"github.com/Rorical/RoriStake/internal/ledger"
	"github.com/Rorical/RoriStake/internal/stake"
	"github.com/Rorical/RoriStake/internal/update"
	"github.com/Rorical/RoriStake/ui/components"
)

type harness struct {
	model   *AppModel
	bus     *eventbus.EventBus
	disp    *dispatcher.EventDispatcher
	service *core.StakeService
	ledger  *ledger.Memory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("RORISTAKE_HOME", t.TempDir())
	t.Setenv("RORISTAKE_BASE_URL", "")

	l := ledger.NewMemory()
	srv := httptest.NewServer(api.NewServer(nil, l, nil).Router())
	t.Cleanup(srv.Close)
	t.Setenv("RORISTAKE_BASE_URL", srv.URL)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)
	svc := core.NewStakeService(cfg, chain.New(cfg.GetBaseURL(), time.Second), eb, nil)
	svc.Start()
	t.Cleanup(func() {
		svc.Stop()
		disp.Stop()
		eb.Close()
	})

	m := NewAppModel(createInitialAppModel(cfg, svc), disp, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return &harness{model: m, bus: eb, disp: disp, service: svc, ledger: l}
}

func (h *harness) press(msgs ...tea.Msg) {
	for _, msg := range msgs {
		h.model.Update(msg)
	}
}

func (h *harness) typeText(text string) {
	for _, r := range text {
		h.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// waitForResult pumps core events into the model until a stake result lands.
func (h *harness) waitForResult(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			msg := h.disp.ListenForUIEvents()()
			ev, ok := msg.(update.CoreEventMsg)
			if !ok {
				return
			}
			h.model.Update(ev)
			if _, isResult := ev.Event.(eventbus.StakeResultEvent); isResult {
				return
			}
		}
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for stake result")
	}
}

func TestEndToEndStake(t *testing.T) {
	h := newHarness(t)

	h.typeText("s")
	view := ansi.Strip(h.model.View())
	require.Contains(t, view, components.DialogTitle)

	h.typeText("0xabc")
	h.press(tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	h.typeText("42")
	h.press(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, h.model.appModel.Dialog.State().Loading)

	h.waitForResult(t)

	st := h.model.appModel.Dialog.State()
	require.False(t, st.IsOpen)
	require.False(t, st.Loading)
	require.Len(t, h.model.appModel.Stakes, 1)

	bal, err := h.ledger.Balance(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Equal(t, 42.0, bal)

	view = ansi.Strip(h.model.View())
	require.NotContains(t, view, components.DialogTitle)
	require.Contains(t, view, "Staked 0xabc: 42")
	require.Contains(t, view, stake.MsgStaked)
}

func TestEndToEndRejectedStakeKeepsDialog(t *testing.T) {
	h := newHarness(t)

	h.typeText("s0xdef")
	h.press(tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	h.typeText("-5")
	h.press(tea.KeyMsg{Type: tea.KeyEnter})
	h.waitForResult(t)

	st := h.model.appModel.Dialog.State()
	require.True(t, st.IsOpen)
	require.False(t, st.Loading)
	require.Empty(t, h.model.appModel.Stakes)

	items := h.model.appModel.Toasts.Items()
	require.NotEmpty(t, items)
	require.Contains(t, items[len(items)-1].Text, stake.MsgUnexpectedReply)
}

func TestViewBeforeWindowSize(t *testing.T) {
	h := newHarness(t)
	h.model.appModel.Width, h.model.appModel.Height = 0, 0
	h.typeText("s")
	require.Contains(t, ansi.Strip(h.model.View()), components.WalletIDPlaceholder)
}
