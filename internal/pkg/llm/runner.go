package llm

import (
	"CommandCenter/internal/api/config"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"golang.org/x/sync/semaphore"
)

var ErrEmptyResponse = errors.New("AI大模型返回数据为空")

// Runner 执行 AI 任务，并发数由信号量限制
type Runner struct {
	model       llms.Model
	modelName   string
	temperature float64
	sem         *semaphore.Weighted
	prompts     map[TaskType]string
}

func NewRunner(model llms.Model, cfg *config.LLMConfig) *Runner {
	weight := cfg.Concurrency
	if weight <= 0 {
		weight = 5
	}
	return &Runner{
		model:       model,
		modelName:   cfg.TextModel,
		temperature: cfg.Temperature,
		sem:         semaphore.NewWeighted(weight),
		prompts:     loadPrompts(cfg.PromptsPath),
	}
}

// Run 执行任务并把模型输出解析到 output，失败时返回的 Task 状态为 failed
func (r *Runner) Run(ctx context.Context, taskType TaskType, input any, output any) (*Task, error) {
	task := &Task{
		ID:        uuid.NewString(),
		Type:      taskType,
		Status:    TaskPending,
		Input:     input,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	task.transition(TaskRunning)
	if err := r.execute(ctx, taskType, input, output); err != nil {
		task.transition(TaskFailed)
		task.Error = err.Error()
		log.ErrorContext(ctx, "AI任务执行失败", "task_id", task.ID, "type", taskType, "err", err)
		return task, err
	}

	task.Output = output
	task.transition(TaskCompleted)
	log.InfoContext(ctx, "AI任务执行成功", "task_id", task.ID, "type", taskType)
	return task, nil
}

func (r *Runner) execute(ctx context.Context, taskType TaskType, input any, output any) error {
	systemPrompt, ok := r.prompts[taskType]
	if !ok {
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal input: %w", err)
	}

	resp, err := r.fetchModel(ctx, systemPrompt, string(payload))
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return ErrEmptyResponse
	}

	if err = json.Unmarshal([]byte(cleanJSON(resp.Choices[0].Content)), output); err != nil {
		return fmt.Errorf("parse model output: %w", err)
	}
	return nil
}

func (r *Runner) fetchModel(ctx context.Context, systemPrompt string, userPrompt string) (*llms.ContentResponse, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}
	log.InfoContext(ctx, "正在请求AI大模型")
	return r.model.GenerateContent(ctx, messages,
		llms.WithModel(r.modelName),
		llms.WithTemperature(r.temperature),
	)
}

// Ping 发送最小请求检查模型是否可用
func (r *Runner) Ping(ctx context.Context) bool {
	if r.model == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := r.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "ping"),
	}, llms.WithModel(r.modelName), llms.WithMaxTokens(1))
	return err == nil
}

// cleanJSON 去掉模型常见的 markdown 代码块包裹
func cleanJSON(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
