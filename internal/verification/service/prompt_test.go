package service

import (
	"strings"
	"testing"

	"leadverify/internal/verification/domain"
)

func TestAssistantPromptFillsLeadDetails(t *testing.T) {
	prompt := assistantPrompt(domain.Lead{FirstName: "Ada", LastName: "Lovelace", Company: "Analytical Engines"})

	if !strings.Contains(prompt, "Ada Lovelace") {
		t.Errorf("prompt missing lead name: %q", prompt)
	}
	if !strings.Contains(prompt, "Analytical Engines") {
		t.Errorf("prompt missing company: %q", prompt)
	}
	if strings.Contains(prompt, "{{") {
		t.Errorf("unreplaced placeholder in prompt: %q", prompt)
	}
}

func TestPromptsFallBackToUnknownCompany(t *testing.T) {
	lead := domain.Lead{FirstName: "Ada", LastName: "Lovelace", Company: "  "}

	if prompt := assistantPrompt(lead); !strings.Contains(prompt, "from Unknown") {
		t.Errorf("expected company fallback in assistant prompt: %q", prompt)
	}
	if prompt := summaryPrompt(lead); !strings.Contains(prompt, "from Unknown") {
		t.Errorf("expected company fallback in summary prompt: %q", prompt)
	}
}
