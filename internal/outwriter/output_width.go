package outwriter

import (
	"os"

	"github.com/madlig/mygameon/internal/contract"
	"golang.org/x/term"
)

// Column budget for the board table, excluding the title column.
const (
	boardFixedWidth = 55 // Rank + Requests + Size + Score + Label with borders/padding
	tableSlack      = 20
	minTitleWidth   = 15
	maxTitleWidth   = 70
)

// getTerminalWidth returns the width override, the detected terminal width,
// or a conservative default.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// GetMaxTitleWidth calculates the maximum width for titles in table output
// based on terminal width and the fixed board columns.
func GetMaxTitleWidth(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - boardFixedWidth - tableSlack
	return min(max(available, minTitleWidth), maxTitleWidth)
}
