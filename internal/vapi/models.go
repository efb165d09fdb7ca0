package vapi

// PhoneNumber is a call-capable number owned by the account.
type PhoneNumber struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// LeadMetadata mirrors the contact details attached to a call so the webhook
// can reconcile the outcome without server-side lookup of the payload.
type LeadMetadata struct {
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Company     string `json:"company,omitempty"`
}

// CallMetadata is attached to every outbound call and echoed back verbatim
// in webhook messages.
type CallMetadata struct {
	JobID string       `json:"jobId"`
	Lead  LeadMetadata `json:"lead"`
}

// Message is one chat message in a model prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool is a capability granted to the assistant during the call.
type Tool struct {
	Type string `json:"type"`
}

// Model configures the conversational model driving the call.
type Model struct {
	Provider string    `json:"provider"`
	Model    string    `json:"model"`
	Messages []Message `json:"messages,omitempty"`
	Tools    []Tool    `json:"tools,omitempty"`
}

// Transcriber configures speech-to-text for the call.
type Transcriber struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Voice configures text-to-speech for the call.
type Voice struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
}

// SummaryPlan asks the provider to produce a post-call summary using the
// given prompt messages.
type SummaryPlan struct {
	Enabled  bool      `json:"enabled"`
	Messages []Message `json:"messages,omitempty"`
}

// AnalysisPlan bundles the post-call analysis settings.
type AnalysisPlan struct {
	SummaryPlan *SummaryPlan `json:"summaryPlan,omitempty"`
}

// Server is the webhook target for call lifecycle messages.
type Server struct {
	URL string `json:"url"`
}

// Assistant is the transient assistant definition sent with each call.
type Assistant struct {
	FirstMessageMode   string        `json:"firstMessageMode,omitempty"`
	Model              Model         `json:"model"`
	Transcriber        *Transcriber  `json:"transcriber,omitempty"`
	Voice              *Voice        `json:"voice,omitempty"`
	EndCallMessage     string        `json:"endCallMessage,omitempty"`
	MaxDurationSeconds int           `json:"maxDurationSeconds,omitempty"`
	AnalysisPlan       *AnalysisPlan `json:"analysisPlan,omitempty"`
	Server             *Server       `json:"server,omitempty"`
}

// Customer is the called party.
type Customer struct {
	Number string `json:"number"`
}

// CreateCallRequest starts one outbound call with a transient assistant.
type CreateCallRequest struct {
	PhoneNumberID string        `json:"phoneNumberId"`
	Customer      Customer      `json:"customer"`
	Assistant     Assistant     `json:"assistant"`
	Metadata      *CallMetadata `json:"metadata,omitempty"`
}

// Call is the provider's record of a placed call.
type Call struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}
