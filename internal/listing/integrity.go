package listing

import (
	"regexp"
	"strings"

	"strategy-sandbox/internal/domain"
)

// AnalysisMarker opens the appended advisor commentary block. Everything
// from the marker onward is free text, excluded from structural checks and
// never parsed back.
const AnalysisMarker = "# --- AI Analysis ---"

var (
	numericLiteral = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
	capitalLine    = regexp.MustCompile(`(?m)^# Initial Capital: \d+$`)
)

// IsStructurallyValid reports whether a user-edited listing is the same
// program as the strategy's canonical template: numeric literals and
// whitespace may differ, nothing else. Reordered, renamed, added, or removed
// lines all fail. Used as the gate before any simulation run.
func IsStructurallyValid(strategy domain.StrategyType, text string) bool {
	tmpl := Template(strategy)
	if tmpl == "" {
		return false
	}
	return Skeleton(text) == Skeleton(tmpl)
}

// Skeleton normalizes a listing for structural comparison: the capital
// comment and any analysis block are stripped, every numeric literal
// collapses to a placeholder, and all whitespace is removed.
func Skeleton(text string) string {
	if i := strings.Index(text, AnalysisMarker); i >= 0 {
		text = text[:i]
	}
	text = capitalLine.ReplaceAllString(text, "")
	text = numericLiteral.ReplaceAllString(text, "#")
	return strings.Join(strings.Fields(text), "")
}

// AppendAnalysis attaches advisor commentary to a listing as a delimited
// comment block. The block is opaque: the translator and the integrity gate
// both ignore it.
func AppendAnalysis(text, commentary string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(text, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(AnalysisMarker)
	sb.WriteString("\n")
	for _, line := range strings.Split(strings.TrimSpace(commentary), "\n") {
		sb.WriteString("# ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
