// Package qgen turns free-text study material into multiple-choice
// questions via an LLM.
package qgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/quizdrill/internal/impex"
	"github.com/abhisek/quizdrill/internal/jsonx"
	"github.com/abhisek/quizdrill/internal/llm"
	"github.com/abhisek/quizdrill/internal/quiz"
)

// Config bounds a generation request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{MaxTokens: 16000}
}

// Generator produces questions from study material.
type Generator struct {
	provider llm.Provider
	config   Config
	now      func() time.Time
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg, now: time.Now}
}

// generatedOutput is the expected structured response.
type generatedOutput struct {
	Questions []quiz.Question `json:"questions"`
}

// Generate converts study material into validated questions with fresh ids.
// Malformed output is parsed leniently: fences stripped, first balanced JSON
// block extracted. A response that still fails to parse surfaces as a
// *quiz.ParseError, with Truncated set when generation hit the token limit.
func (g *Generator) Generate(ctx context.Context, material string) ([]quiz.Question, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, &quiz.ValidationError{Field: "material", Reason: "please enter some study material"}
	}

	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: generationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerationMessage(material)},
		},
		Schema:      QuestionsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		content, truncated, ok := recoverableContent(err)
		if !ok {
			return nil, fmt.Errorf("question generation failed: %w", err)
		}
		questions, perr := parseQuestions(string(content))
		if perr != nil {
			return nil, &quiz.ParseError{Err: perr, Truncated: truncated}
		}
		return g.finalize(questions)
	}

	questions, perr := parseQuestions(string(resp.Content))
	if perr != nil {
		return nil, &quiz.ParseError{Err: perr, Truncated: resp.StopReason == "max_tokens"}
	}
	return g.finalize(questions)
}

func (g *Generator) finalize(questions []quiz.Question) ([]quiz.Question, error) {
	if len(questions) == 0 {
		return nil, &quiz.EmptyError{}
	}
	for i := range questions {
		if questions[i].Explanation == "" {
			questions[i].Explanation = quiz.DefaultExplanation
		}
		questions[i].Normalize()
	}
	impex.AssignMissingIDs(questions, g.now())
	return questions, nil
}

// parseQuestions leniently extracts the questions list from model output.
func parseQuestions(text string) ([]quiz.Question, error) {
	cleaned := jsonx.StripFences(text)
	if block, ok := jsonx.FirstJSONBlock(cleaned); ok {
		cleaned = block
	}

	var out generatedOutput
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("parse generated questions: %w", err)
	}
	return out.Questions, nil
}

// recoverableContent unpacks errors that still carry model output.
// truncated reports whether the output was cut off at the token limit.
func recoverableContent(err error) (content json.RawMessage, truncated, ok bool) {
	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) && len(maxTok.Content) > 0 {
		return maxTok.Content, true, true
	}
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) && len(invalid.Content) > 0 {
		return invalid.Content, false, true
	}
	return nil, false, false
}
