package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/pipecheck/internal/suite"
)

var stdoutWriter io.Writer = os.Stdout

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	satisfiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mismatchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	erroredStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func printTableOutput(summary *suite.Summary, plain bool) {
	fmt.Println()
	fmt.Println(render(headerStyle, "Verification Results:", plain))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%-30s %-14s %-8s %s\n", "Check ID", "Status", "Duration", "Message")
	fmt.Println(strings.Repeat("-", 80))

	for _, result := range summary.Results {
		status := render(styleFor(result.Status), fmt.Sprintf("%s %s", symbolFor(result.Status), result.Status), plain)
		fmt.Printf("%-30s %-14s %-8s %s\n",
			truncate(result.CheckID, 30),
			status,
			fmt.Sprintf("%.2fs", result.Duration.Seconds()),
			truncate(result.Message, 60),
		)
	}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total:      %d\n", summary.Total)
	fmt.Printf("  Satisfied:  %d\n", summary.Satisfied)
	fmt.Printf("  Mismatched: %d\n", summary.Mismatched)
	fmt.Printf("  Errored:    %d\n", summary.Errored)
	fmt.Printf("  Duration:   %s\n", summary.Duration.String())

	switch {
	case summary.AllSatisfied():
		fmt.Println(render(satisfiedStyle, "\nAll checks satisfied", plain))
	case summary.Errored > 0:
		fmt.Println(render(erroredStyle, "\nSome checks could not be carried out", plain))
	default:
		fmt.Println(render(mismatchedStyle, "\nSome checks observed unexpected values", plain))
	}
}

func printJSONOutput(summary *suite.Summary, suitePath, runID string) {
	type jsonResult struct {
		CheckID  string  `json:"check_id"`
		Type     string  `json:"type"`
		Status   string  `json:"status"`
		Message  string  `json:"message"`
		Error    string  `json:"error,omitempty"`
		Duration float64 `json:"duration_seconds"`
	}

	type jsonOutput struct {
		SuiteFile  string       `json:"suite_file"`
		RunID      string       `json:"run_id"`
		Timestamp  string       `json:"timestamp"`
		Total      int          `json:"total"`
		Satisfied  int          `json:"satisfied"`
		Mismatched int          `json:"mismatched"`
		Errored    int          `json:"errored"`
		Duration   float64      `json:"duration_seconds"`
		Results    []jsonResult `json:"results"`
	}

	out := jsonOutput{
		SuiteFile:  suitePath,
		RunID:      runID,
		Timestamp:  time.Now().Format(time.RFC3339),
		Total:      summary.Total,
		Satisfied:  summary.Satisfied,
		Mismatched: summary.Mismatched,
		Errored:    summary.Errored,
		Duration:   summary.Duration.Seconds(),
		Results:    make([]jsonResult, len(summary.Results)),
	}

	for i, result := range summary.Results {
		jr := jsonResult{
			CheckID:  result.CheckID,
			Type:     result.Type,
			Status:   string(result.Status),
			Message:  result.Message,
			Duration: result.Duration.Seconds(),
		}
		if result.Err != nil {
			jr.Error = result.Err.Error()
		}
		out.Results[i] = jr
	}

	encoder := json.NewEncoder(stdoutWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		fmt.Fprintf(stderrWriter, "Error writing JSON output: %v\n", err)
	}
}

func render(style lipgloss.Style, s string, plain bool) string {
	if plain {
		return s
	}
	return style.Render(s)
}

func styleFor(status suite.CheckStatus) lipgloss.Style {
	switch status {
	case suite.StatusSatisfied:
		return satisfiedStyle
	case suite.StatusMismatched:
		return mismatchedStyle
	default:
		return erroredStyle
	}
}

func symbolFor(status suite.CheckStatus) string {
	switch status {
	case suite.StatusSatisfied:
		return "✔"
	case suite.StatusMismatched:
		return "✖"
	default:
		return "⚠"
	}
}

// truncate shortens s to at most maxLen runes, never splitting a rune.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
