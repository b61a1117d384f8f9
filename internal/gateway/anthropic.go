package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/daymate/backend/internal/domain"
)

// AnthropicModel classifies brain-dump items with Claude.
type AnthropicModel struct {
	client anthropic.Client
	model  string
	log    *slog.Logger
}

// NewAnthropicModel creates a language model gateway using the given API key
// and model name.
func NewAnthropicModel(apiKey, model string, logger *slog.Logger) *AnthropicModel {
	return &AnthropicModel{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		log:    logger.With("gateway", "anthropic"),
	}
}

// Interpret asks the model what a captured thought is: an actionable task,
// a note, or a reminder.
func (m *AnthropicModel) Interpret(ctx context.Context, req InterpretRequest) (Interpretation, error) {
	prompt := buildInterpretPrompt(req.Text)

	msg, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: 256,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return Interpretation{}, fmt.Errorf("llm api call: %w", err)
	}

	if len(msg.Content) == 0 {
		return Interpretation{}, fmt.Errorf("llm: empty response")
	}

	result, err := parseInterpretation(msg.Content[0].Text)
	if err != nil {
		return Interpretation{}, err
	}

	m.log.DebugContext(ctx, "item interpreted",
		slog.String("type", result.Type.String()),
	)
	return result, nil
}

// buildInterpretPrompt creates the classification prompt for one item.
func buildInterpretPrompt(text string) string {
	return fmt.Sprintf(`You are a personal-assistant triage engine.

Classify the following captured thought into exactly one category:
- TASK: something actionable the user should do
- NOTE: information worth keeping, nothing to do
- REMINDER: something time-bound the user wants to be reminded of

Thought:
%s

Output ONLY a valid JSON object matching this exact schema:
{
  "type": "<TASK|NOTE|REMINDER>",
  "summary": "<one short sentence restating the thought>"
}

Rules:
- Use exactly one of the three uppercase type values
- Keep the summary under 120 characters
- Output ONLY the JSON, no markdown, no explanations`, text)
}

type interpretResponse struct {
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// parseInterpretation extracts and validates the model's JSON verdict.
func parseInterpretation(responseText string) (Interpretation, error) {
	jsonStr, err := extractJSON(responseText)
	if err != nil {
		return Interpretation{}, fmt.Errorf("llm: %w", err)
	}

	var resp interpretResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return Interpretation{}, fmt.Errorf("llm: decode response: %w", err)
	}

	typ := domain.BrainDumpType(resp.Type)
	if !typ.IsValid() || typ == domain.BrainDumpTypeUnsorted {
		return Interpretation{}, fmt.Errorf("llm: unexpected item type %q", resp.Type)
	}

	return Interpretation{Type: typ, Summary: resp.Summary}, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
