package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriStake/internal/models"
	"github.com/Rorical/RoriStake/internal/notify"
	"github.com/Rorical/RoriStake/internal/stake"
)

func TestRenderDialogShowsFieldsAndButtons(t *testing.T) {
	out := ansi.Strip(RenderDialog(stake.State{IsOpen: true, AmountText: "10", Amount: 10}, models.FocusWalletID))
	require.Contains(t, out, DialogTitle)
	require.Contains(t, out, WalletIDPlaceholder)
	require.Contains(t, out, "10")
	require.Contains(t, out, ConfirmLabel)
	require.Contains(t, out, CancelLabel)
	require.NotContains(t, out, LoadingLabel)
}

func TestRenderDialogWhileLoading(t *testing.T) {
	out := ansi.Strip(RenderDialog(stake.State{IsOpen: true, Loading: true, WalletID: "0xabc"}, models.FocusConfirm))
	require.Contains(t, out, LoadingLabel)
	require.Contains(t, out, "0xabc")
	require.Contains(t, out, AmountPlaceholder)
}

func TestRenderModalKeepsBaseRows(t *testing.T) {
	base := strings.Join([]string{
		"row-0................",
		"row-1................",
		"row-2................",
		"row-3................",
		"row-4................",
		"row-5................",
		"row-6................",
		"row-7................",
		"row-8................",
	}, "\n")
	out := RenderModal(base, "Popup", 20, 9)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 9)
	require.Contains(t, out, "Popup")
	require.Contains(t, lines[0], "row-0")
	require.Contains(t, lines[8], "row-8")
}

func TestRenderOverlayTopRight(t *testing.T) {
	base := "left side text\nsecond line"
	out := ansi.Strip(RenderOverlay(base, "TOAST", 30, 3, lipgloss.Right, lipgloss.Top))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "left side text"))
	require.True(t, strings.HasSuffix(lines[0], "TOAST"))
	require.True(t, strings.HasPrefix(lines[1], "second line"))
}

func TestRenderOverlayZeroSize(t *testing.T) {
	require.Equal(t, "base", RenderOverlay("base", "x", 0, 0, lipgloss.Center, lipgloss.Center))
}

func TestRenderToastsNewestFirst(t *testing.T) {
	require.Empty(t, RenderToasts(nil))
	out := ansi.Strip(RenderToasts([]notify.Notification{
		notify.New(notify.Error, "Enter wallet ID"),
		notify.New(notify.Success, "Staked successfully!"),
	}))
	require.Less(t, strings.Index(out, "Staked successfully!"), strings.Index(out, "Enter wallet ID"))
}

func TestRenderStakes(t *testing.T) {
	require.Contains(t, ansi.Strip(RenderStakes(nil)), "No stakes yet")
	out := ansi.Strip(RenderStakes([]models.StakeRecord{{WalletID: "0xabc", Amount: 42, At: time.Now()}}))
	require.Contains(t, out, "Staked 0xabc: 42")
}

func TestRenderStatusInFlight(t *testing.T) {
	out := ansi.Strip(RenderStatus("Staking", 1, 2, 40))
	require.Contains(t, out, "Staking..")
	require.Contains(t, out, "(1 in flight)")
}
