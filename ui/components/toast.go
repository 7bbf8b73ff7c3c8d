package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriStake/internal/notify"
	"github.com/Rorical/RoriStake/ui/styles"
)

func toastColor(level notify.Level) lipgloss.Color {
	switch level {
	case notify.Success:
		return lipgloss.Color("42")
	case notify.Error:
		return lipgloss.Color("203")
	default:
		return lipgloss.Color("39")
	}
}

// RenderToasts stacks notifications, newest on top.
func RenderToasts(items []notify.Notification) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		lines = append(lines, styles.ToastStyle(toastColor(items[i].Level)).Render(items[i].Text))
	}
	return strings.Join(lines, "\n")
}
