package llm

import (
	"time"
)

type TaskType string

const (
	TaskGenerateOutline TaskType = "generate-outline"
	TaskGenerateFacts   TaskType = "generate-facts"
	TaskGenerateContent TaskType = "generate-content"
	TaskGenerateSEO     TaskType = "generate-seo"
	TaskSummarize       TaskType = "summarize"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task 一次 AI 任务的执行记录
type Task struct {
	ID        string
	Type      TaskType
	Status    TaskStatus
	Input     any
	Output    any
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Task) transition(status TaskStatus) {
	t.Status = status
	t.UpdatedAt = time.Now()
}
