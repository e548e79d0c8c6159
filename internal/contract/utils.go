package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Complexity label constants.
const (
	HeavyValue    = "Heavy"    // Heavy review load
	ModerateValue = "Moderate" // Moderate review load
	LightValue    = "Light"    // Light review load
	TrivialValue  = "Trivial"  // Trivial review load
)

// Color variables for console output.
var (
	HeavyColor    = color.New(color.FgRed, color.Bold)     // heavyColor represents standard danger.
	ModerateColor = color.New(color.FgMagenta, color.Bold) // moderateColor represents strong, distinct warning.
	LightColor    = color.New(color.FgYellow)              // lightColor represents standard caution, not bold.
	TrivialColor  = color.New(color.FgCyan)                // trivialColor represents informational signal.
)

// GetPlainLabel returns a plain text label indicating the review load
// based on the change's complexity score. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 5:
		return HeavyValue
	case score >= 2.5:
		return ModerateValue
	case score >= 1:
		return LightValue
	default:
		return TrivialValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case HeavyValue:
		return HeavyColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case LightValue:
		return LightColor.Sprint(text)
	default: // "Trivial"
		return TrivialColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. It falls back to os.Stdout when no path is given.
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

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".reviewlens_cache.db"
	}
	return filepath.Join(homeDir, ".reviewlens_cache.db")
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for both content and the "...".
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
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
