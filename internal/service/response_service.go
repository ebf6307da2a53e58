package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/pkg/cache"
	"maternal-companion-go/pkg/llm"
	"maternal-companion-go/pkg/log"
)

// DefaultHistoryWindow is the number of past turns included in a prompt.
const DefaultHistoryWindow = 3

const promptTemplate = `
As a maternal health assistant, provide ONE complete, supportive response to this %s message.
Be emotionally appropriate and informative.

Your job include:
 -Always take care of tone
 -Never let patient panic and talk supportively

Conversation:
%s

User: %s
Assistant:
`

// GenerationResult is one reply and the path that produced it.
type GenerationResult struct {
	Text string
	Path model.ResponsePath
	// Failure and Err explain why the template path was taken.
	Failure FailureKind
	Err     error
	Cached  bool
}

// ResponseGenerator produces the assistant reply for a message.
type ResponseGenerator interface {
	Generate(ctx context.Context, message string, mood MoodResolution, history []model.Turn) GenerationResult
	// Available reports whether the generative model is configured.
	Available() bool
}

type responseGenerator struct {
	client llm.Client
	memo   *cache.Memo
	window int
}

// NewResponseGenerator builds a generator over client with a prompt cache.
// A nil client always uses the templates (limited mode).
func NewResponseGenerator(client llm.Client, store cache.Store, window int) ResponseGenerator {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	return &responseGenerator{
		client: client,
		memo:   cache.NewMemo("generation", store),
		window: window,
	}
}

func (g *responseGenerator) Available() bool {
	return g.client != nil
}

var errEmptyGeneration = errors.New("model returned empty text")

// Generate tries the model first and falls back to a template on any failure,
// including an empty answer. It always returns non-empty text.
func (g *responseGenerator) Generate(ctx context.Context, message string, mood MoodResolution, history []model.Turn) GenerationResult {
	if g.client == nil {
		return g.fallback(mood, FailureUnavailable, nil)
	}

	prompt := BuildPrompt(mood.Mood, lastTurns(history, g.window), message)
	text, hit, err := g.memo.Do(ctx, prompt, func(ctx context.Context) (string, error) {
		text, err := g.client.Generate(ctx, prompt)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", errEmptyGeneration
		}
		return text, nil
	})
	if err != nil {
		kind := FailureCall
		if errors.Is(err, errEmptyGeneration) {
			kind = FailureEmpty
		}
		log.Warnw("generation failed, using template", "model", g.client.Model(), "failure", kind, "error", err)
		return g.fallback(mood, kind, err)
	}
	return GenerationResult{Text: text, Path: model.PathGenerated, Cached: hit}
}

func (g *responseGenerator) fallback(mood MoodResolution, kind FailureKind, err error) GenerationResult {
	return GenerationResult{
		Text:    FallbackResponse(mood.Mood, mood.Context),
		Path:    model.PathTemplate,
		Failure: kind,
		Err:     err,
	}
}

// BuildPrompt renders the generation prompt for message with the given turns.
func BuildPrompt(mood model.Mood, turns []model.Turn, message string) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("User: %s\nAssistant: %s", t.User, t.Assistant))
	}
	return fmt.Sprintf(promptTemplate, mood, strings.Join(lines, "\n"), message)
}

// FallbackResponse fills the first template of mood (neutral when the mood has
// none) with the fragments of context.
func FallbackResponse(mood model.Mood, context string) string {
	templates, ok := ResponseTemplates[mood]
	if !ok || len(templates) == 0 {
		templates = ResponseTemplates[model.MoodNeutral]
	}
	entry := MoodCatalog[mood]
	r := strings.NewReplacer(
		"{mood}", string(mood),
		"{info}", fragment(entry.Info, context),
		"{suggestion}", fragment(entry.Suggestions, context),
		"{symptom}", fragment(entry.Symptoms, context),
	)
	return r.Replace(templates[0])
}

func lastTurns(history []model.Turn, n int) []model.Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
