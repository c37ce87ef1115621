package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/repocat/schema"
)

// Color variables for console output.
var (
	ActiveColor   = color.New(color.FgGreen, color.Bold) // ActiveColor marks popular, maintained projects.
	GrowingColor  = color.New(color.FgCyan)              // GrowingColor marks young or moderately maintained projects.
	DormantColor  = color.New(color.FgYellow)            // DormantColor marks popular projects with little activity.
	InactiveColor = color.New(color.FgRed)               // InactiveColor marks abandoned or unpopular projects.
	NeutralColor  = color.New(color.FgWhite)             // NeutralColor marks everything else.
)

// categoryColors maps each label to its display color.
var categoryColors = map[schema.Category]*color.Color{
	schema.HighPopularityActive:          ActiveColor,
	schema.HighPopularityLowMaintenance:  DormantColor,
	schema.NicheActive:                   ActiveColor,
	schema.NewAndGrowing:                 GrowingColor,
	schema.MatureLowActivity:             DormantColor,
	schema.InactiveOrAbandoned:           InactiveColor,
	schema.LowPopularityLowActivity:      InactiveColor,
	schema.ModeratePopularityLowActivity: DormantColor,
	schema.ModeratelyMaintained:          GrowingColor,
	schema.HighHighLarge:                 ActiveColor,
	schema.HighHighSmall:                 ActiveColor,
	schema.HighLowLarge:                  DormantColor,
	schema.HighLowSmall:                  DormantColor,
	schema.LowHighLarge:                  GrowingColor,
	schema.LowHighSmall:                  GrowingColor,
}

// GetPlainLabel returns the label text used for CSV, JSON, and table printing.
// The unmatched label renders blank.
func GetPlainLabel(c schema.Category) string {
	return string(c)
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(c schema.Category) string {
	text := GetPlainLabel(c)
	if text == "" {
		return text
	}
	if col, ok := categoryColors[c]; ok {
		return col.Sprint(text)
	}
	return NeutralColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
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

// GetDBFilePath returns the path to the SQLite DB file for the table store.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".repocat.db"
	}
	return filepath.Join(homeDir, ".repocat.db")
}

// TruncateName truncates a name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." suffix and at least one character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
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
