package domain

import "testing"

func TestStatusTableDerive(t *testing.T) {
	table := DefaultStatusTable()

	tests := []struct {
		name        string
		summary     string
		endedReason string
		want        string
	}{
		{"summary wins over reason", "Connected to Contact", "voicemail", "Connected to Contact"},
		{"summary whitespace trimmed", "  Generic Voicemail \n", "", "Generic Voicemail"},
		{"no answer", "", "customer-did-not-answer", StatusNoAnswer},
		{"customer busy", "", "customer-busy", StatusBusy},
		{"legacy busy", "", "busy", StatusBusy},
		{"voicemail", "", "voicemail", StatusVoicemail},
		{"timeout", "", EndedReasonTimeout, StatusTimeout},
		{"placement error", "", EndedReasonError, StatusError},
		{"unrecognized reason", "", "assistant-ended-call", StatusUnknown},
		{"empty outcome", "", "", StatusUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := table.Derive(tc.summary, tc.endedReason); got != tc.want {
				t.Errorf("Derive(%q, %q) = %q, want %q", tc.summary, tc.endedReason, got, tc.want)
			}
		})
	}
}

func TestStatusTableDeriveIsStable(t *testing.T) {
	table := DefaultStatusTable()

	first := table.Derive("", "customer-did-not-answer")
	for i := 0; i < 10; i++ {
		if got := table.Derive("", "customer-did-not-answer"); got != first {
			t.Fatalf("mapping not stable: got %q then %q", first, got)
		}
	}
}

func TestStatusTableWithOverrides(t *testing.T) {
	table := DefaultStatusTable().WithOverrides(map[string]string{
		"operator-menu": "Reached an Operator",
		"voicemail":     "Machine Answered",
	})

	if got := table.Derive("", "operator-menu"); got != "Reached an Operator" {
		t.Errorf("expected override for new reason, got %q", got)
	}
	if got := table.Derive("", "voicemail"); got != "Machine Answered" {
		t.Errorf("expected override to replace default, got %q", got)
	}
	if got := table.Derive("", "customer-busy"); got != StatusBusy {
		t.Errorf("expected untouched default to survive, got %q", got)
	}
}
