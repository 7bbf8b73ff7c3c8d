package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriStake/internal/models"
	"github.com/Rorical/RoriStake/internal/stake"
	"github.com/Rorical/RoriStake/ui/styles"
)

const (
	DialogTitle         = "Stake Wallet"
	WalletIDPlaceholder = "Wallet ID (e.g., 0x123...)"
	AmountPlaceholder   = "Amount (tokens)"
	ConfirmLabel        = "Confirm"
	LoadingLabel        = "Staking..."
	CancelLabel         = "Cancel"
	dialogInputWidth    = 36
)

// RenderDialog draws the stake dialog body. The confirm button is shown
// disabled while a request is outstanding.
func RenderDialog(state stake.State, focus models.Focus) string {
	var b strings.Builder

	b.WriteString(styles.DialogTitleStyle().Render(DialogTitle))
	b.WriteString("\n")
	b.WriteString(renderInput(state.WalletID, WalletIDPlaceholder, focus == models.FocusWalletID))
	b.WriteString("\n")
	b.WriteString(renderInput(state.AmountText, AmountPlaceholder, focus == models.FocusAmount))
	b.WriteString("\n\n")

	confirm := ConfirmLabel
	if state.Loading {
		confirm = LoadingLabel
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.ButtonStyle(focus == models.FocusConfirm, state.Loading).Render(confirm),
		styles.ButtonStyle(focus == models.FocusCancel, false).Render(CancelLabel),
	)
	b.WriteString(buttons)
	b.WriteString("\n\n")
	b.WriteString(styles.PlaceholderStyle().Render("tab: next  enter: confirm  esc: close"))

	return b.String()
}

func renderInput(value, placeholder string, focused bool) string {
	content := value
	if content == "" {
		content = styles.PlaceholderStyle().Render(placeholder)
	}
	if focused {
		content += "▏"
	}
	return styles.InputStyle(dialogInputWidth, focused).Render(content)
}
