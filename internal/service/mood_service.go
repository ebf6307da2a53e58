package service

import (
	"context"
	"strings"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/pkg/log"
)

// MoodResolution is the mood assigned to one message.
type MoodResolution struct {
	Mood    model.Mood
	Context string
	Source  model.MoodSource
	// Failure is set when the classifier was asked and failed.
	Failure FailureKind
}

// MoodResolver assigns exactly one mood and a context key to a message.
type MoodResolver interface {
	Resolve(ctx context.Context, text string) MoodResolution
}

type moodResolver struct {
	matcher    *KeywordMatcher
	classifier EmotionClassifier
}

// NewMoodResolver combines the keyword matcher and the emotion classifier.
func NewMoodResolver(matcher *KeywordMatcher, classifier EmotionClassifier) MoodResolver {
	return &moodResolver{matcher: matcher, classifier: classifier}
}

// Resolve checks medical keywords first so a possible medical concern is
// never masked by the classifier's reading of the tone.
func (r *moodResolver) Resolve(ctx context.Context, text string) MoodResolution {
	lower := strings.ToLower(text)

	if _, keyword, ok := r.matcher.Match(lower, model.MoodMedical); ok {
		if keyword == "" {
			keyword = model.DefaultContext
		}
		log.Debugw("mood resolved by keyword", "mood", model.MoodMedical, "keyword", keyword)
		return MoodResolution{Mood: model.MoodMedical, Context: keyword, Source: model.SourceKeyword}
	}

	result := r.classifier.Detect(ctx, text)
	if !result.OK() {
		return MoodResolution{
			Mood:    model.MoodNeutral,
			Context: model.DefaultContext,
			Source:  model.SourceFallback,
			Failure: result.Failure,
		}
	}
	log.Debugw("mood resolved by classifier", "mood", result.Mood, "cached", result.Cached)
	return MoodResolution{Mood: result.Mood, Context: model.DefaultContext, Source: model.SourceClassifier}
}
