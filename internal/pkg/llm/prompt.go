package llm

import (
	"CommandCenter/internal/api/config"
	log "log/slog"
	"os"
)

const defaultOutlinePrompt = `You are an editorial planner for a content team.
Given a JSON request with topic, keywords, targetAudience, tone and length, produce an article outline.
Respond with JSON only: {"title": string, "sections": [{"heading": string, "subheadings": [string], "keyPoints": [string]}], "estimatedWordCount": number}.`

const defaultFactsPrompt = `You are a fact researcher.
Given a JSON request with topic, an optional outline, factCount and optional source documents, extract at most factCount verifiable facts.
Prefer facts supported by the documents and cite the document url as source.
Respond with JSON only: {"facts": [{"statement": string, "source": string, "confidence": number between 0 and 1, "category": string}], "totalCount": number}.`

const defaultContentPrompt = `You are a senior writer.
Given a JSON request with an outline, approved facts, tone and target length in words, write the article in markdown.
Respond with JSON only: {"content": string, "wordCount": number, "readingTime": number, "keyPoints": [string]}.`

const defaultSEOPrompt = `You are an SEO specialist.
Given a JSON request with title, content, keywords and targetKeyword, produce search metadata. Keep the title under 60 characters and the description under 160 characters.
Respond with JSON only: {"title": string, "description": string, "keywords": [string], "ogTitle": string, "ogDescription": string, "twitterTitle": string, "twitterDescription": string}.`

const defaultSummaryPrompt = `You summarize articles.
Given a JSON request with content, length and format, write the summary in the requested format.
Respond with JSON only: {"summary": string, "keyPoints": [string], "wordCount": number}.`

// loadPrompts 配置了文件路径时读取文件，否则使用内置 prompt
func loadPrompts(cfg config.PromptPathConfig) map[TaskType]string {
	return map[TaskType]string{
		TaskGenerateOutline: readPrompt(cfg.Outline, defaultOutlinePrompt),
		TaskGenerateFacts:   readPrompt(cfg.Facts, defaultFactsPrompt),
		TaskGenerateContent: readPrompt(cfg.Content, defaultContentPrompt),
		TaskGenerateSEO:     readPrompt(cfg.SEO, defaultSEOPrompt),
		TaskSummarize:       readPrompt(cfg.Summary, defaultSummaryPrompt),
	}
}

func readPrompt(file string, fallback string) string {
	if file == "" {
		return fallback
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.Error("读取prompt文件失败", "file", file, "err", err)
		return fallback
	}
	return string(data)
}
