// Package domain holds the verification core's entities: leads, jobs, the
// phone resource pool, the lead queue and the status derivation table.
package domain

// Lead is a contact record to be verified by an outbound call.
// Leads are immutable once accepted into a job.
type Lead struct {
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Company     string `json:"company,omitempty"`
}

// VerifiedLead is a lead carried through to the result set with the
// verification status assigned by its terminal call outcome.
type VerifiedLead struct {
	Lead
	VerificationStatus string `json:"verificationStatus"`
}
