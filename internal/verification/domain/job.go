package domain

import (
	"sync"
	"time"
)

// JobState is the lifecycle state of a verification job.
type JobState string

const (
	// JobStateCreated means the job exists but no call has been dispatched yet.
	JobStateCreated JobState = "created"
	// JobStateProcessing means at least one dispatch has occurred.
	JobStateProcessing JobState = "processing"
	// JobStateCompleted means every lead has reached a terminal outcome.
	JobStateCompleted JobState = "completed"
)

// Job aggregates the queue, pool, results and counters for one submitted
// batch of leads. All mutation happens under the job's own mutex, which
// serializes dispatch and reconciliation effects per job; jobs are
// independent of each other.
type Job struct {
	mu sync.Mutex

	ID    string
	State JobState
	Queue *LeadQueue
	Pool  *Pool

	Results     []VerifiedLead
	Total       int
	Completed   int
	ActiveCalls int

	ResultsPath string

	CreatedAt   time.Time
	CompletedAt time.Time
}

// NewJob creates a job in the created state over the given leads and numbers.
func NewJob(id string, leads []Lead, numbers []PhoneResource) *Job {
	return &Job{
		ID:        id,
		State:     JobStateCreated,
		Queue:     NewLeadQueue(leads),
		Pool:      NewPool(numbers),
		Results:   make([]VerifiedLead, 0, len(leads)),
		Total:     len(leads),
		CreatedAt: time.Now(),
	}
}

// Lock acquires the job's mutex.
func (j *Job) Lock() { j.mu.Lock() }

// Unlock releases the job's mutex.
func (j *Job) Unlock() { j.mu.Unlock() }

// MarkProcessing transitions created → processing. Further calls are no-ops;
// there is no transition out of completed.
func (j *Job) MarkProcessing() {
	if j.State == JobStateCreated {
		j.State = JobStateProcessing
	}
}

// RecordResult appends a terminal outcome for one lead and updates the
// counters. inFlight is true when the lead had an active call (webhook,
// timeout or placement failure) and false when it failed before dispatch.
// It returns true exactly once: when this result completes the job and the
// processing → completed transition fires.
//
// Callers must hold the job lock.
func (j *Job) RecordResult(result VerifiedLead, inFlight bool) bool {
	j.Results = append(j.Results, result)
	j.Completed++
	if inFlight {
		j.ActiveCalls--
	}

	if j.Completed == j.Total && j.State != JobStateCompleted {
		j.State = JobStateCompleted
		j.CompletedAt = time.Now()
		return true
	}
	return false
}

// Snapshot is a consistent read of the job's progress.
type Snapshot struct {
	Total       int
	Completed   int
	Pending     int
	ActiveCalls int
	State       JobState
	ResultsPath string
}

// Progress returns a snapshot taken under the job lock.
func (j *Job) Progress() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Snapshot{
		Total:       j.Total,
		Completed:   j.Completed,
		Pending:     j.Queue.Len(),
		ActiveCalls: j.ActiveCalls,
		State:       j.State,
		ResultsPath: j.ResultsPath,
	}
}

// ResultsCopy returns a copy of the accumulated results, taken under the
// job lock.
func (j *Job) ResultsCopy() []VerifiedLead {
	j.mu.Lock()
	defer j.mu.Unlock()
	results := make([]VerifiedLead, len(j.Results))
	copy(results, j.Results)
	return results
}
