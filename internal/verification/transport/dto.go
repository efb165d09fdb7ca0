// Package transport defines the request and response shapes of the
// verification HTTP API.
package transport

import "leadverify/internal/verification/domain"

// LeadDTO is one lead in a submission request.
type LeadDTO struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Company     string `json:"company"`
}

// SubmitLeadsRequest is the JSON body for submitting a verification batch.
type SubmitLeadsRequest struct {
	Leads []LeadDTO `json:"leads" validate:"required,min=1,dive"`
}

// ToDomain converts the request's leads to domain leads in submission order.
func (r SubmitLeadsRequest) ToDomain() []domain.Lead {
	leads := make([]domain.Lead, len(r.Leads))
	for i, dto := range r.Leads {
		leads[i] = domain.Lead{
			PhoneNumber: dto.PhoneNumber,
			FirstName:   dto.FirstName,
			LastName:    dto.LastName,
			Company:     dto.Company,
		}
	}
	return leads
}

// SubmitLeadsResponse acknowledges an accepted batch.
type SubmitLeadsResponse struct {
	JobID string `json:"jobId"`
	Total int    `json:"total"`
}

// StatusResponse reports a job's progress.
type StatusResponse struct {
	JobID       string `json:"jobId"`
	State       string `json:"state"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	Pending     int    `json:"pending"`
	ActiveCalls int    `json:"activeCalls"`
}

// FromSnapshot builds a status response from a job snapshot.
func FromSnapshot(jobID string, snap domain.Snapshot) StatusResponse {
	return StatusResponse{
		JobID:       jobID,
		State:       string(snap.State),
		Total:       snap.Total,
		Completed:   snap.Completed,
		Pending:     snap.Pending,
		ActiveCalls: snap.ActiveCalls,
	}
}
