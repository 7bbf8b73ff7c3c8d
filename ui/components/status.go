package components

import (
	"fmt"
	"strings"

	"github.com/Rorical/RoriStake/ui/styles"
)

func RenderStatus(status string, inFlight int, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if inFlight > 0 {
		statusContent += strings.Repeat(".", loadingDots)
		statusContent += fmt.Sprintf(" (%d in flight)", inFlight)
	}

	return statusStyle.Render(statusContent)
}
