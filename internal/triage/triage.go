// Package triage post-processes model output for urgency signals.
//
// Detection is plain substring matching against the markers the analysis
// prompt instructs the model to emit. It is a heuristic: a sentence saying a
// case is NOT urgent but containing the word still flags. That limitation is
// accepted; no semantic classification is attempted.
package triage

import "strings"

// Code is the severity band of an analysis.
type Code string

const (
	CodeRed     Code = "RED"
	CodeYellow  Code = "YELLOW"
	CodeGreen   Code = "GREEN"
	CodeUnknown Code = "UNKNOWN"
)

const (
	markerRed    = "🔴"
	markerYellow = "🟡"
	markerGreen  = "🟢"

	// wordCritical and wordUrgent are the Persian markers for "critical"
	// and "urgent" used by the analysis prompt.
	wordCritical = "بحرانی"
	wordUrgent   = "فوری"
)

// IsUrgent reports whether the analysis text carries an urgency marker: the
// red glyph, the literal word for "critical", or a case-insensitive match of
// the word for "urgent".
func IsUrgent(analysis string) bool {
	if strings.Contains(analysis, markerRed) || strings.Contains(analysis, wordCritical) {
		return true
	}
	return strings.Contains(strings.ToLower(analysis), wordUrgent)
}

// Classify maps the colored triage markers the analysis prompt asks for onto
// a severity band. Red wins over yellow, yellow over green; text with no
// marker is Unknown.
func Classify(analysis string) Code {
	switch {
	case strings.Contains(analysis, markerRed):
		return CodeRed
	case strings.Contains(analysis, markerYellow):
		return CodeYellow
	case strings.Contains(analysis, markerGreen):
		return CodeGreen
	default:
		return CodeUnknown
	}
}
