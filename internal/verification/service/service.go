// Package service implements the verification scheduler: job submission,
// call dispatch against the phone number pool, and reconciliation of
// terminal call outcomes arriving by webhook or by timeout.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadverify/internal/verification/domain"
	"leadverify/platform/apperr"
	"leadverify/platform/events"
	"leadverify/platform/logger"
	"leadverify/platform/phone"
)

// NumberSource lists the account's call-capable phone numbers.
type NumberSource interface {
	ListNumbers(ctx context.Context) ([]domain.PhoneResource, error)
}

// CallRequest describes one outbound verification call to place.
type CallRequest struct {
	JobID           string
	PhoneNumberID   string
	Destination     string
	Lead            domain.Lead
	AssistantPrompt string
	SummaryPrompt   string
}

// CallPlacer starts an outbound call and returns the provider's call ID.
type CallPlacer interface {
	PlaceCall(ctx context.Context, req CallRequest) (string, error)
}

// ResultSink persists a completed job's results and returns their location.
type ResultSink interface {
	Persist(jobID string, results []domain.VerifiedLead) (string, error)
}

// CleanupScheduler arranges eviction of a job at a future point in time.
type CleanupScheduler interface {
	ScheduleJobCleanup(jobID string, at time.Time) error
}

// callAttempt tracks one in-flight call awaiting a terminal outcome. Exactly
// one of the webhook and the timeout claims it; the loser finds it gone.
type callAttempt struct {
	jobID         string
	lead          domain.Lead
	phoneNumberID string
	timer         *time.Timer
}

// interimOutcome is a terminal outcome delivered on an interim status update
// rather than an end-of-call report. It is held back and only applied if the
// end-of-call report never arrives.
type interimOutcome struct {
	endedReason string
	summary     string
}

// Options collects the dependencies and knobs for the verification service.
type Options struct {
	Store    JobStore
	Numbers  NumberSource
	Placer   CallPlacer
	Sink     ResultSink
	Cleanup  CleanupScheduler // optional, nil disables scheduled eviction
	Bus      events.Bus
	Log      *logger.Logger
	Statuses domain.StatusTable

	MaxConcurrentCalls int
	CallTimeout        time.Duration
	JobRetention       time.Duration
}

// Service is the verification scheduler. One instance serves all jobs;
// per-job state lives on the Job itself, cross-job call tracking lives here.
type Service struct {
	store    JobStore
	numbers  NumberSource
	placer   CallPlacer
	sink     ResultSink
	cleanup  CleanupScheduler
	bus      events.Bus
	log      *logger.Logger
	statuses domain.StatusTable

	maxConcurrent int
	callTimeout   time.Duration
	retention     time.Duration

	mu      sync.Mutex
	pending map[string]*callAttempt
	interim map[string]interimOutcome
}

// NewService creates the scheduler from its options.
func NewService(opts Options) *Service {
	return &Service{
		store:         opts.Store,
		numbers:       opts.Numbers,
		placer:        opts.Placer,
		sink:          opts.Sink,
		cleanup:       opts.Cleanup,
		bus:           opts.Bus,
		log:           opts.Log,
		statuses:      opts.Statuses,
		maxConcurrent: opts.MaxConcurrentCalls,
		callTimeout:   opts.CallTimeout,
		retention:     opts.JobRetention,
		pending:       make(map[string]*callAttempt),
		interim:       make(map[string]interimOutcome),
	}
}

// Submit accepts a batch of leads, normalizes their numbers, creates a job
// over the account's phone numbers and starts dispatching asynchronously.
// It returns the job ID.
func (s *Service) Submit(ctx context.Context, leads []domain.Lead) (string, error) {
	if len(leads) == 0 {
		return "", apperr.Validation("at least one lead is required")
	}

	numbers, err := s.numbers.ListNumbers(ctx)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "listing phone numbers", err).WithOp("verification.Submit")
	}
	if len(numbers) == 0 {
		return "", apperr.Unavailable("no call-capable phone numbers available")
	}

	for i := range leads {
		leads[i].PhoneNumber = phone.NormalizeE164(leads[i].PhoneNumber)
	}

	job := domain.NewJob(uuid.NewString(), leads, numbers)
	s.store.Put(job)
	s.log.JobEvent("job_created", job.ID, job.Total, 0)

	go s.dispatch(job)

	return job.ID, nil
}

// Status returns a progress snapshot of the job.
func (s *Service) Status(jobID string) (domain.Snapshot, error) {
	job, ok := s.store.Get(jobID)
	if !ok {
		return domain.Snapshot{}, apperr.NotFound("verification job not found")
	}
	return job.Progress(), nil
}

// ResultsLocation returns the path of the job's result file. The file exists
// only once the job has completed.
func (s *Service) ResultsLocation(jobID string) (string, error) {
	job, ok := s.store.Get(jobID)
	if !ok {
		return "", apperr.NotFound("verification job not found")
	}
	snap := job.Progress()
	if snap.State != domain.JobStateCompleted || snap.ResultsPath == "" {
		return "", apperr.Validation("verification job has not completed yet")
	}
	return snap.ResultsPath, nil
}

// CacheInterimResult holds back a terminal outcome reported on an interim
// status update. It is applied by the timeout path if no end-of-call report
// arrives for the call.
func (s *Service) CacheInterimResult(callID, endedReason, summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, tracked := s.pending[callID]; !tracked {
		return
	}
	s.interim[callID] = interimOutcome{endedReason: endedReason, summary: summary}
}

// CompleteCall reconciles an end-of-call report delivered by webhook. Late
// and duplicate reports are acknowledged without effect; an unknown job is
// an error.
func (s *Service) CompleteCall(ctx context.Context, jobID, callID, endedReason, summary string) error {
	if _, ok := s.store.Get(jobID); !ok {
		return apperr.NotFound("verification job not found")
	}

	attempt, ok := s.claimForJob(jobID, callID)
	if !ok {
		// Timed out already, a duplicate delivery, or a report whose job
		// does not match the tracked call. Nothing to apply.
		s.log.CallEvent("call_report_ignored", jobID, callID, "")
		return nil
	}
	attempt.timer.Stop()

	s.finish(callID, attempt, endedReason, summary)
	return nil
}
