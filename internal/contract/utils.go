package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/auditview/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // CriticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // HighColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // ModerateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // LowColor represents informational / low-priority signal.
	PositiveColor = color.New(color.FgGreen)
	NegativeColor = color.New(color.FgRed)
)

// GetColorBadge returns a colored badge label for console output (table).
// The color follows the badge severity; unranked badges fall back to their tone.
func GetColorBadge(b *schema.Badge) string {
	if b == nil {
		return ""
	}
	switch {
	case b.Severity >= 5:
		return CriticalColor.Sprint(b.Label)
	case b.Severity == 4:
		return HighColor.Sprint(b.Label)
	case b.Severity == 3:
		return ModerateColor.Sprint(b.Label)
	case b.Severity > 0:
		return LowColor.Sprint(b.Label)
	}
	return GetColorTone(schema.Tone(b.Level), b.Label)
}

// GetColorTone colors text according to its tone. Neutral text is returned as is.
func GetColorTone(tone schema.Tone, text string) string {
	switch tone {
	case schema.PositiveTone:
		return PositiveColor.Sprint(text)
	case schema.WarningTone:
		return ModerateColor.Sprint(text)
	case schema.NegativeTone:
		return NegativeColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDatalakeDBFilePath returns the path to the SQLite DB file holding DataLake payloads.
func GetDatalakeDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".auditview_datalake.db"
	}
	return filepath.Join(homeDir, ".auditview_datalake.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one rune.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
