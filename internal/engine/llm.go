package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// LLMClient wraps the external text-generation service. It serves two
// calls: query cleanup (strict single-shot JSON contract) and result
// summarization (blocking or token-streamed).
type LLMClient struct {
	client openai.Client
	model  string
}

// NewLLMClient builds a client against any OpenAI-compatible endpoint.
func NewLLMClient(baseURL, apiKey, model string) *LLMClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &LLMClient{client: openai.NewClient(opts...), model: model}
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CleanQueries asks the model for 2–3 clean search phrases for the user's
// input. The contract is a bare JSON string array; anything else is an
// error, and the caller falls back to deterministic expansion.
func (l *LLMClient) CleanQueries(ctx context.Context, phrase, lang string) ([]string, error) {
	metrics.LLMCalls.Add(1)
	prompt := fmt.Sprintf(cleanQueriesPrompt, lang, phrase)

	resp, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(l.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(150),
	})
	if err != nil {
		metrics.LLMErrors.Add(1)
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("clean queries: empty response")
	}
	return parseCleanQueries(resp.Choices[0].Message.Content)
}

// parseCleanQueries enforces the JSON array contract on raw model output.
func parseCleanQueries(raw string) ([]string, error) {
	raw = stripFences(raw)
	var phrases []string
	if err := json.Unmarshal([]byte(raw), &phrases); err != nil {
		return nil, fmt.Errorf("clean queries: parse failed on %q: %w", Truncate(raw, 120), err)
	}
	var out []string
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("clean queries: empty array")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out, nil
}

// Summarize produces a short natural-language summary of the result set.
func (l *LLMClient) Summarize(ctx context.Context, query, lang string, results []JobResult) (string, error) {
	metrics.LLMCalls.Add(1)
	resp, err := l.client.Chat.Completions.New(ctx, l.summaryParams(query, lang, results))
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarize: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// SummarizeStream streams the summary token by token, forwarding each
// chunk to emit as it arrives. Caller cancellation aborts the upstream
// call through ctx.
func (l *LLMClient) SummarizeStream(ctx context.Context, query, lang string, results []JobResult, emit func(token string)) error {
	metrics.LLMCalls.Add(1)
	stream := l.client.Chat.Completions.NewStreaming(ctx, l.summaryParams(query, lang, results))
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			emit(delta)
		}
	}
	if err := stream.Err(); err != nil {
		metrics.LLMErrors.Add(1)
		return err
	}
	return nil
}

func (l *LLMClient) summaryParams(query, lang string, results []JobResult) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(l.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(summarySystemPrompt, langName(lang))),
			openai.UserMessage(fmt.Sprintf(summaryUserPrompt, query, buildResultsText(results))),
		},
		Temperature: openai.Float(0.4),
		MaxTokens:   openai.Int(400),
	}
}

// buildResultsText formats the ranked results for LLM context.
func buildResultsText(results []JobResult) string {
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "\n[%d] %s", i+1, r.Title)
		if r.Company != "" {
			fmt.Fprintf(&sb, " — %s", r.Company)
		}
		if r.Location != "" {
			fmt.Fprintf(&sb, " (%s)", r.Location)
		}
		sb.WriteString("\n")
		if r.Salary != "" {
			fmt.Fprintf(&sb, "Salary: %s\n", r.Salary)
		}
		if r.EmploymentType != "" {
			fmt.Fprintf(&sb, "Type: %s\n", r.EmploymentType)
		}
		if r.PostedAt != "" {
			fmt.Fprintf(&sb, "Posted: %s\n", r.PostedAt)
		}
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "Snippet: %s\n", Truncate(r.Snippet, 300))
		}
	}
	return sb.String()
}

func langName(lang string) string {
	if lang == "ar" {
		return "Arabic"
	}
	return "English"
}
