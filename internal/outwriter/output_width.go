package outwriter

import (
	"os"

	"github.com/huangsam/auditview/internal/contract"
	"golang.org/x/term"
)

// GetMaxCellWidth calculates the maximum width of one table cell based on the
// terminal width and the number of columns in the table.
func GetMaxCellWidth(cfg *contract.Config, columns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	if columns < 1 {
		columns = 1
	}
	// Each column costs a border and two spaces of padding
	available := (termWidth - 1 - 3*columns) / columns
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
