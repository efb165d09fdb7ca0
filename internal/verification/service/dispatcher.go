package service

import (
	"context"

	"leadverify/internal/verification/domain"
	"leadverify/platform/phone"
)

// dispatch runs one dispatch pass over the job. It is called after job
// creation and again whenever a terminal outcome frees capacity.
func (s *Service) dispatch(job *domain.Job) {
	job.Lock()
	s.dispatchLocked(job)
	job.Unlock()
}

// dispatchLocked starts calls while the job has queued leads, a free phone
// number and headroom under the concurrency ceiling. Leads that are not
// structurally valid E.164 numbers fail immediately without consuming a
// number. Callers must hold the job lock.
func (s *Service) dispatchLocked(job *domain.Job) {
	limit := min(job.Pool.Size(), s.maxConcurrent)

	for job.ActiveCalls < limit {
		lead, ok := job.Queue.Dequeue()
		if !ok {
			return
		}

		if !phone.ValidE164(lead.PhoneNumber) {
			job.MarkProcessing()
			s.log.CallEvent("call_rejected", job.ID, "", lead.PhoneNumber)
			result := domain.VerifiedLead{Lead: lead, VerificationStatus: domain.StatusInvalidNumber}
			if job.RecordResult(result, false) {
				s.finalizeLocked(job)
			}
			continue
		}

		resource, ok := job.Pool.Lease()
		if !ok {
			job.Queue.PushFront(lead)
			return
		}

		job.MarkProcessing()
		job.ActiveCalls++
		go s.placeCall(job, lead, resource)
	}
}

// placeCall starts the outbound call and registers it for reconciliation.
// A placement failure is itself a terminal outcome for the lead.
func (s *Service) placeCall(job *domain.Job, lead domain.Lead, resource domain.PhoneResource) {
	req := CallRequest{
		JobID:           job.ID,
		PhoneNumberID:   resource.ID,
		Destination:     lead.PhoneNumber,
		Lead:            lead,
		AssistantPrompt: assistantPrompt(lead),
		SummaryPrompt:   summaryPrompt(lead),
	}

	callID, err := s.placer.PlaceCall(context.Background(), req)
	if err != nil {
		s.log.Error("placing call failed", "job_id", job.ID, "destination", lead.PhoneNumber, "error", err)
		status := s.statuses.Derive("", domain.EndedReasonError)
		result := domain.VerifiedLead{Lead: lead, VerificationStatus: status}

		job.Lock()
		job.Pool.Release(resource.ID)
		if job.RecordResult(result, true) {
			s.finalizeLocked(job)
		} else {
			s.dispatchLocked(job)
		}
		job.Unlock()
		return
	}

	s.log.CallEvent("call_placed", job.ID, callID, lead.PhoneNumber)
	s.track(job.ID, callID, lead, resource.ID)
}

// track registers the in-flight call and arms its timeout. The timeout fires
// only if neither the webhook nor an earlier timeout claims the call first.
func (s *Service) track(jobID, callID string, lead domain.Lead, phoneNumberID string) {
	attempt := &callAttempt{
		jobID:         jobID,
		lead:          lead,
		phoneNumberID: phoneNumberID,
		timer:         s.armTimeout(callID),
	}

	s.mu.Lock()
	s.pending[callID] = attempt
	s.mu.Unlock()
}
