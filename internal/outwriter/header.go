package outwriter

import (
	"fmt"

	"github.com/adlens/adlens/internal/contract"
)

// LogAnalysisHeader prints a concise, 2-line header for each analysis phase.
func LogAnalysisHeader(cfg *contract.Config) {
	workspaceName := contract.WorkspaceLabel(cfg.WorkspacePath)

	searchPrefix, datePrefix := "", ""
	if cfg.UseEmojis {
		searchPrefix, datePrefix = "🔎 ", "📅 "
	}

	// Line 1: The analysis summary (workspace and model)
	fmt.Printf("%sWorkspace: %s (Model: %s)\n", searchPrefix, workspaceName, cfg.Model)

	// Line 2: The anchor time the analysis is evaluated against
	fmt.Printf("%sAnchor: %s\n", datePrefix, cfg.GetAnalysisTime().Format(contract.DateTimeFormat))
}

// LogCompareHeader prints a header for model comparison analysis.
func LogCompareHeader(cfg *contract.Config) {
	workspaceName := contract.WorkspaceLabel(cfg.WorkspacePath)

	searchPrefix, comparePrefix := "", ""
	if cfg.UseEmojis {
		searchPrefix, comparePrefix = "🔎 ", "📊 "
	}

	fmt.Printf("%sWorkspace: %s\n", searchPrefix, workspaceName)
	fmt.Printf("%sComparing: %s ↔ %s\n", comparePrefix, cfg.BaseModel, cfg.TargetModel)
}
