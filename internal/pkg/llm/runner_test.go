package llm

import (
	"CommandCenter/internal/api/config"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply    string
	err      error
	messages []llms.MessageContent
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func newTestRunner(m llms.Model) *Runner {
	return NewRunner(m, &config.LLMConfig{TextModel: "test", Concurrency: 1})
}

func TestRunOutline(t *testing.T) {
	model := &fakeModel{reply: "```json\n{\"title\":\"Go at scale\",\"sections\":[{\"heading\":\"Intro\",\"subheadings\":[\"Why\"],\"keyPoints\":[\"a\"]}],\"estimatedWordCount\":1200}\n```"}
	r := newTestRunner(model)

	in := &OutlineInput{Topic: "Go at scale"}
	in.ApplyDefaults()
	var out OutlineOutput
	task, err := r.Run(context.Background(), TaskGenerateOutline, in, &out)
	if err != nil {
		t.Fatalf("Run() err = %v", err)
	}
	if task.Status != TaskCompleted || task.ID == "" {
		t.Fatalf("task = %+v", task)
	}
	if out.Title != "Go at scale" || len(out.Sections) != 1 || out.EstimatedWordCount != 1200 {
		t.Fatalf("output = %+v", out)
	}

	if len(model.messages) != 2 || model.messages[0].Role != llms.ChatMessageTypeSystem {
		t.Fatalf("unexpected messages: %+v", model.messages)
	}
	human, ok := model.messages[1].Parts[0].(llms.TextContent)
	if !ok || !strings.Contains(human.Text, `"tone":"professional"`) || !strings.Contains(human.Text, `"length":"medium"`) {
		t.Fatalf("human prompt = %+v", model.messages[1].Parts[0])
	}
}

func TestRunFailures(t *testing.T) {
	cases := []struct {
		name  string
		model *fakeModel
	}{
		{"model error", &fakeModel{err: errors.New("upstream 503")}},
		{"empty reply", &fakeModel{reply: "   "}},
		{"not json", &fakeModel{reply: "Sure! Here are your facts."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out FactsOutput
			task, err := newTestRunner(tc.model).Run(context.Background(), TaskGenerateFacts, &FactsInput{Topic: "x"}, &out)
			if err == nil {
				t.Fatalf("expected error")
			}
			if task.Status != TaskFailed || task.Error == "" {
				t.Fatalf("task = %+v", task)
			}
		})
	}
}

func TestFactsDefaults(t *testing.T) {
	cases := []struct{ in, want int }{{0, 10}, {5, 5}, {25, 20}}
	for _, tc := range cases {
		in := &FactsInput{FactCount: tc.in}
		in.ApplyDefaults()
		if in.FactCount != tc.want {
			t.Fatalf("FactCount(%d) = %d, want %d", tc.in, in.FactCount, tc.want)
		}
	}
}

func TestCleanJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		if got := cleanJSON(in); got != want {
			t.Fatalf("cleanJSON(%q) = %q", in, got)
		}
	}
}
