package service

import (
	"context"
	"time"

	"leadverify/internal/verification/domain"
	"leadverify/platform/events"
)

// armTimeout schedules the fallback outcome for a call that never produces
// an end-of-call report.
func (s *Service) armTimeout(callID string) *time.Timer {
	return time.AfterFunc(s.callTimeout, func() {
		s.handleTimeout(callID)
	})
}

// claim atomically removes the call from the pending registry. The first
// caller wins; every later claim for the same call fails, which makes the
// webhook and the timeout mutually exclusive.
func (s *Service) claim(callID string) (*callAttempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.pending[callID]
	if !ok {
		return nil, false
	}
	delete(s.pending, callID)
	return attempt, true
}

// claimForJob is claim restricted to calls registered under the given job.
// A report carrying a different job ID does not claim the call, which stays
// pending for its genuine outcome.
func (s *Service) claimForJob(jobID, callID string) (*callAttempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.pending[callID]
	if !ok || attempt.jobID != jobID {
		return nil, false
	}
	delete(s.pending, callID)
	return attempt, true
}

// consumeInterim removes and returns the cached interim outcome for a call.
func (s *Service) consumeInterim(callID string) (interimOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcome, ok := s.interim[callID]
	delete(s.interim, callID)
	return outcome, ok
}

// handleTimeout resolves a call whose end-of-call report never arrived. A
// cached interim outcome takes precedence over the plain timeout status.
func (s *Service) handleTimeout(callID string) {
	attempt, ok := s.claim(callID)
	if !ok {
		return
	}

	endedReason, summary := domain.EndedReasonTimeout, ""
	if cached, ok := s.consumeInterim(callID); ok {
		endedReason, summary = cached.endedReason, cached.summary
	}

	s.log.CallEvent("call_timed_out", attempt.jobID, callID, attempt.lead.PhoneNumber)
	s.finish(callID, attempt, endedReason, summary)
}

// finish applies a claimed call's terminal outcome to its job: derive the
// status, release the number, record the result and either finalize the job
// or dispatch the next lead.
func (s *Service) finish(callID string, attempt *callAttempt, endedReason, summary string) {
	s.discardInterim(callID)

	job, ok := s.store.Get(attempt.jobID)
	if !ok {
		// Evicted while the call was in flight. Drop the outcome.
		return
	}

	status := s.statuses.Derive(summary, endedReason)
	result := domain.VerifiedLead{Lead: attempt.lead, VerificationStatus: status}
	s.log.CallEvent("call_completed", attempt.jobID, callID, attempt.lead.PhoneNumber)

	job.Lock()
	job.Pool.Release(attempt.phoneNumberID)
	if job.RecordResult(result, true) {
		s.finalizeLocked(job)
	} else {
		s.dispatchLocked(job)
	}
	job.Unlock()
}

func (s *Service) discardInterim(callID string) {
	s.mu.Lock()
	delete(s.interim, callID)
	s.mu.Unlock()
}

// finalizeLocked runs the job's completion effects: persist the results,
// announce completion and schedule eviction. RecordResult fires the
// completion transition exactly once, so this runs at most once per job.
// Callers must hold the job lock.
func (s *Service) finalizeLocked(job *domain.Job) {
	path, err := s.sink.Persist(job.ID, job.Results)
	if err != nil {
		s.log.Error("persisting job results failed", "job_id", job.ID, "error", err)
	} else {
		job.ResultsPath = path
	}

	s.log.JobEvent("job_completed", job.ID, job.Total, job.Completed)

	s.bus.Publish(context.Background(), domain.JobCompleted{
		BaseEvent:   events.NewBaseEvent(),
		JobID:       job.ID,
		Total:       job.Total,
		ResultsPath: job.ResultsPath,
	})

	if s.cleanup != nil {
		if err := s.cleanup.ScheduleJobCleanup(job.ID, time.Now().Add(s.retention)); err != nil {
			s.log.Error("scheduling job cleanup failed", "job_id", job.ID, "error", err)
		}
	}
}
