package service

import (
	"strings"

	"leadverify/internal/verification/domain"
)

const assistantPromptTemplate = `You are a courteous caller verifying contact details for {{firstName}} {{lastName}} from {{company}}.

When someone answers, ask whether you are speaking with {{firstName}} {{lastName}}. If they confirm, thank them, tell them their contact details have been verified, and end the call. If they say you have the wrong number, apologize briefly and end the call. If you reach a voicemail system or an automated menu, end the call without leaving a message.

Keep the conversation short and polite. Never ask for personal or financial information. Do not reveal who requested the verification.`

const summaryPromptTemplate = `Classify the outcome of this verification call to {{firstName}} {{lastName}} from {{company}}. Respond with exactly one of the following labels and nothing else:

Connected to Contact
Wrong Number
Gatekeeper
Voicemail
No Answer
Not in Service`

const companyFallback = "Unknown"

// leadReplacer fills the prompt placeholders from a lead. An empty company
// reads as "Unknown" so the assistant never speaks a blank.
func leadReplacer(lead domain.Lead) *strings.Replacer {
	company := strings.TrimSpace(lead.Company)
	if company == "" {
		company = companyFallback
	}
	return strings.NewReplacer(
		"{{firstName}}", strings.TrimSpace(lead.FirstName),
		"{{lastName}}", strings.TrimSpace(lead.LastName),
		"{{company}}", company,
	)
}

func assistantPrompt(lead domain.Lead) string {
	return leadReplacer(lead).Replace(assistantPromptTemplate)
}

func summaryPrompt(lead domain.Lead) string {
	return leadReplacer(lead).Replace(summaryPromptTemplate)
}
