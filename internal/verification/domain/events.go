package domain

import "leadverify/platform/events"

// EventJobCompleted is published once per job, when its final lead reaches a
// terminal outcome and the result file has been written.
const EventJobCompleted = "verification.job.completed"

// JobCompleted carries the completed job's identity and result location to
// subscribers such as the object storage uploader.
type JobCompleted struct {
	events.BaseEvent
	JobID       string `json:"jobId"`
	Total       int    `json:"total"`
	ResultsPath string `json:"resultsPath"`
}

// EventName returns the event type identifier.
func (e JobCompleted) EventName() string { return EventJobCompleted }
