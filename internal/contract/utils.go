package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/adlens/adlens/schema"
)

// Scoring label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetRiskColorLabel returns a colored text label for console output (table).
// It uses schema.GetRiskLabel to determine the string, and then applies the
// appropriate color.
func GetRiskColorLabel(score float64) string {
	text := schema.GetRiskLabel(score)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// GetSeverityColorLabel returns a colored text label for an alert severity.
func GetSeverityColorLabel(severity schema.AlertSeverity) string {
	text := schema.DisplayEnum(severity)

	switch severity {
	case schema.CriticalSeverity:
		return CriticalColor.Sprint(text)
	case schema.WarningSeverity:
		return ModerateColor.Sprint(text)
	default: // info
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path and format type. It falls back to os.Stdout on error.
// This function replaces both selectCSVOutputFile and selectJSONOutputFile.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldExclude returns true if the given flight or segment identifier matches
// any of the exclude entries. Entries match against the ID exactly or against
// the name as a case-insensitive substring, so "brand" skips both a flight
// named "Brand Awareness Q3" and a segment with ID "brand".
func ShouldExclude(id, name string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}
		if ex == id {
			return true
		}
		if name != "" && strings.Contains(strings.ToLower(name), strings.ToLower(ex)) {
			return true
		}
	}
	return false
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

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".adlens.db"
	}
	return filepath.Join(homeDir, ".adlens.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".adlens_analysis.db"
	}
	return filepath.Join(homeDir, ".adlens_analysis.db")
}

// WorkspaceLabel derives a short display name from a workspace path by
// stripping the directory and the file extension.
func WorkspaceLabel(path string) string {
	base := filepath.Base(path)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "workspace"
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TruncateName truncates a flight or segment name to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 to ensure there's space for both the
// "..." suffix and at least one character of content. Without this check,
// small maxWidth values could cause slice bounds errors in the truncation calculation.
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
