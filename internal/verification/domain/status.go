package domain

import "strings"

// Verification statuses produced without a structured summary.
const (
	StatusNoAnswer      = "No Answer"
	StatusBusy          = "Busy"
	StatusVoicemail     = "Voicemail"
	StatusTimeout       = "Timeout"
	StatusError         = "Error"
	StatusInvalidNumber = "Invalid Number"
	StatusUnknown       = "unknown"
)

// Call-end reasons with dedicated handling in the scheduler.
const (
	EndedReasonTimeout = "timeout"
	EndedReasonError   = "error"
)

// StatusTable maps call-end reasons to verification statuses. The mapping is
// total: a structured summary wins when present, a recognized end reason maps
// through the table, and everything else derives StatusUnknown.
type StatusTable struct {
	reasons map[string]string
}

// DefaultStatusTable returns the built-in end-reason mapping.
func DefaultStatusTable() StatusTable {
	return StatusTable{reasons: map[string]string{
		"customer-did-not-answer": StatusNoAnswer,
		"customer-busy":           StatusBusy,
		"busy":                    StatusBusy,
		"voicemail":               StatusVoicemail,
		EndedReasonTimeout:        StatusTimeout,
		EndedReasonError:          StatusError,
	}}
}

// WithOverrides returns a table with the given reason-to-status entries laid
// over the defaults. Unknown reasons can be mapped via configuration; the
// upstream end-reason taxonomy is not stable across API versions.
func (t StatusTable) WithOverrides(overrides map[string]string) StatusTable {
	merged := make(map[string]string, len(t.reasons)+len(overrides))
	for reason, status := range t.reasons {
		merged[reason] = status
	}
	for reason, status := range overrides {
		merged[reason] = status
	}
	return StatusTable{reasons: merged}
}

// Derive returns the verification status for a terminal call outcome.
func (t StatusTable) Derive(summary, endedReason string) string {
	if trimmed := strings.TrimSpace(summary); trimmed != "" {
		return trimmed
	}
	if status, ok := t.reasons[endedReason]; ok {
		return status
	}
	return StatusUnknown
}
