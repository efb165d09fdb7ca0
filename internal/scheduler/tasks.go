// Package scheduler provides asynq-backed deferred task handling, used to
// evict completed verification jobs after their retention window.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskJobCleanup = "verification.job.cleanup"

type JobCleanupPayload struct {
	JobID string `json:"jobId"`
}

func NewJobCleanupTask(payload JobCleanupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskJobCleanup, data), nil
}

func ParseJobCleanupPayload(task *asynq.Task) (JobCleanupPayload, error) {
	var payload JobCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return JobCleanupPayload{}, err
	}
	return payload, nil
}
