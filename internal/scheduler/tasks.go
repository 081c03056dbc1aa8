package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAdSpendPull = "adspend.pull.daily"

const TaskDailySummary = "leads.summary.daily"

// AdSpendPullPayload selects the day to pull spend for. An empty Day means
// the previous reporting day.
type AdSpendPullPayload struct {
	Day string `json:"day,omitempty"`
}

// DailySummaryPayload selects the day to summarize. An empty Date means the
// previous reporting day.
type DailySummaryPayload struct {
	Date string `json:"date,omitempty"`
}

func NewAdSpendPullTask(payload AdSpendPullPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAdSpendPull, data), nil
}

func ParseAdSpendPullPayload(task *asynq.Task) (AdSpendPullPayload, error) {
	var payload AdSpendPullPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AdSpendPullPayload{}, err
	}
	return payload, nil
}

func NewDailySummaryTask(payload DailySummaryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailySummary, data), nil
}

func ParseDailySummaryPayload(task *asynq.Task) (DailySummaryPayload, error) {
	var payload DailySummaryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DailySummaryPayload{}, err
	}
	return payload, nil
}
