package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rorical/RoriStake/internal/models"
	"github.com/Rorical/RoriStake/ui/styles"
)

const TriggerLabel = "Stake to Race"

func RenderHeader(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(styles.HeaderStyle().Render(line) + "\n")
			continue
		}
		b.WriteString(styles.SystemStyle().Render(line) + "\n")
	}
	return b.String() + "\n"
}

func RenderTrigger() string {
	return styles.TriggerStyle().Render(TriggerLabel+" (s)") + "\n\n"
}

func RenderStakes(stakes []models.StakeRecord) string {
	if len(stakes) == 0 {
		return styles.SystemStyle().Render("No stakes yet") + "\n\n"
	}
	var b strings.Builder
	for _, s := range stakes {
		line := fmt.Sprintf("%s  Staked %s: %s", s.At.Format("15:04:05"), s.WalletID, FormatAmount(s.Amount))
		b.WriteString(styles.StakeRecordStyle().Render(line) + "\n")
	}
	return b.String() + "\n"
}

func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
