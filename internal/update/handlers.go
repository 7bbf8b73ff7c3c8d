package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriStake/internal/chain"
	"github.com/Rorical/RoriStake/internal/eventbus"
	"github.com/Rorical/RoriStake/internal/models"
	"github.com/Rorical/RoriStake/internal/stake"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if appModel.Dialog.State().IsOpen {
		return handleDialogKey(appModel, keyMsg, eb)
	}

	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "s", "enter":
		appModel.Dialog.Open()
		appModel.Focus = models.FocusWalletID
	case "x":
		appModel.Toasts.DismissLatest()
	}
	return nil
}

func handleDialogKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	dialog := appModel.Dialog
	state := dialog.State()

	switch keyMsg.Type {
	case tea.KeyEsc:
		// Esc plays the role of a backdrop click
		dialog.Cancel()
		return nil
	case tea.KeyTab, tea.KeyDown:
		appModel.Focus = appModel.Focus.Next()
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		appModel.Focus = appModel.Focus.Prev()
		return nil
	case tea.KeyEnter:
		if appModel.Focus == models.FocusCancel {
			dialog.Cancel()
			return nil
		}
		submitStake(appModel, eb)
		return nil
	case tea.KeyBackspace:
		switch appModel.Focus {
		case models.FocusWalletID:
			dialog.UpdateWalletID(dropLastRune(state.WalletID))
		case models.FocusAmount:
			dialog.UpdateAmount(dropLastRune(state.AmountText))
		}
		return nil
	case tea.KeyRunes, tea.KeySpace:
		text := string(keyMsg.Runes)
		if keyMsg.Type == tea.KeySpace {
			text = " "
		}
		switch appModel.Focus {
		case models.FocusWalletID:
			dialog.UpdateWalletID(state.WalletID + text)
		case models.FocusAmount:
			dialog.UpdateAmount(state.AmountText + text)
		}
	}
	return nil
}

// submitStake starts a submission and hands it to the core. Confirm is
// disabled while a request is outstanding, so ErrInFlight is dropped.
func submitStake(appModel *models.AppModel, eb *eventbus.EventBus) {
	sub, err := appModel.Dialog.Begin()
	if err != nil {
		return
	}
	if err := eb.SendToCore(eventbus.SubmitStakeEvent{Submission: sub}); err != nil {
		appModel.Dialog.Resolve(sub, chain.StakeResponse{}, err)
	}
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StakeResultEvent:
		outcome := appModel.Dialog.Resolve(event.Submission, event.Response, event.Err)
		if outcome == stake.OutcomeStaked {
			appModel.Focus = models.FocusWalletID
		}
	case eventbus.StatusEvent:
		appModel.Status = event.Text
		appModel.InFlight = event.InFlight
		appModel.ServiceReady = event.Ready
	}
	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel, now time.Time) tea.Cmd {
	appModel.Toasts.Expire(now)
	if appModel.Dialog.State().Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	} else {
		appModel.LoadingDots = 0
	}
	return TickCmd()
}
