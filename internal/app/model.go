package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Rorical/RoriStake/internal/dispatcher"
	"github.com/Rorical/RoriStake/internal/models"
	"github.com/Rorical/RoriStake/internal/stake"
	"github.com/Rorical/RoriStake/internal/update"
	"github.com/Rorical/RoriStake/ui/components"
)

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	log        *zap.Logger
}

// NewAppModel wires the stake dialog to the model's history and toast queue.
func NewAppModel(initial models.AppModel, disp *dispatcher.EventDispatcher, log *zap.Logger) *AppModel {
	if log == nil {
		log = zap.NewNop()
	}
	m := &AppModel{
		appModel:   initial,
		dispatcher: disp,
		log:        log,
	}
	m.appModel.Dialog = stake.New(m.onStake, m.appModel.Toasts, nil)
	return m
}

func (m *AppModel) onStake(walletID string, amount float64) {
	m.appModel.RecordStake(walletID, amount)
	m.log.Info("staked", zap.String("wallet_id", walletID), zap.Float64("amount", amount))
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForUIEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}

	eventBus := m.dispatcher.GetEventBus()
	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus)

	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderHeader(m.appModel.Header))
	b.WriteString(components.RenderTrigger())
	b.WriteString(components.RenderStakes(m.appModel.Stakes))

	width, height := m.appModel.Width, m.appModel.Height
	if height > 0 {
		b.WriteString(strings.Repeat("\n", max(0, height-lipgloss.Height(b.String()))))
	}
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.InFlight, m.appModel.LoadingDots, width))

	view := b.String()
	if state := m.appModel.Dialog.State(); state.IsOpen {
		dialog := components.RenderDialog(state, m.appModel.Focus)
		if width <= 0 || height <= 0 {
			// No size yet
			view += "\n" + dialog
		} else {
			view = components.RenderModal(view, dialog, width, height)
		}
	}
	if toasts := components.RenderToasts(m.appModel.Toasts.Items()); toasts != "" {
		view = components.RenderOverlay(view, toasts, width, height, lipgloss.Right, lipgloss.Top)
	}
	return view
}
