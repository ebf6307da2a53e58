package service

import (
	"context"
	"errors"
	"strings"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/pkg/cache"
	"maternal-companion-go/pkg/classifier"
	"maternal-companion-go/pkg/log"
)

// FailureKind tells why an external capability did not produce a result.
type FailureKind string

const (
	FailureNone        FailureKind = ""
	FailureUnavailable FailureKind = "unavailable"
	FailureCall        FailureKind = "call"
	FailureMalformed   FailureKind = "malformed"
	FailureEmpty       FailureKind = "empty"
)

// EmotionResult is the outcome of one classification. Mood is neutral
// whenever Failure is set.
type EmotionResult struct {
	Mood    model.Mood
	Failure FailureKind
	Err     error
	Cached  bool
}

// OK reports whether the classifier produced the mood.
func (r EmotionResult) OK() bool {
	return r.Failure == FailureNone
}

// EmotionClassifier maps free text onto the mood vocabulary.
type EmotionClassifier interface {
	Detect(ctx context.Context, text string) EmotionResult
}

type emotionClassifier struct {
	client classifier.Client
	memo   *cache.Memo
}

// NewEmotionClassifier wraps client with an exact-text cache. A nil client
// makes every detection fail as unavailable.
func NewEmotionClassifier(client classifier.Client, store cache.Store) EmotionClassifier {
	return &emotionClassifier{
		client: client,
		memo:   cache.NewMemo("emotion", store),
	}
}

var errEmptyScores = errors.New("classifier returned no label scores")

// Detect never fails: errors are reported in the result and map to neutral.
func (c *emotionClassifier) Detect(ctx context.Context, text string) EmotionResult {
	if c.client == nil {
		return EmotionResult{Mood: model.MoodNeutral, Failure: FailureUnavailable}
	}

	value, hit, err := c.memo.Do(ctx, text, func(ctx context.Context) (string, error) {
		scores, err := c.client.Classify(ctx, text)
		if err != nil {
			return "", err
		}
		top, ok := classifier.Top(scores)
		if !ok {
			return "", errEmptyScores
		}
		return string(MoodForLabel(top.Label)), nil
	})
	if err != nil {
		kind := FailureCall
		switch {
		case errors.Is(err, classifier.ErrMalformedResponse):
			kind = FailureMalformed
		case errors.Is(err, errEmptyScores):
			kind = FailureEmpty
		}
		log.Warnw("emotion classification failed, using neutral", "failure", kind, "error", err)
		return EmotionResult{Mood: model.MoodNeutral, Failure: kind, Err: err}
	}

	mood := model.Mood(value)
	if !mood.Valid() {
		mood = model.MoodNeutral
	}
	return EmotionResult{Mood: mood, Cached: hit}
}

// MoodForLabel maps a classifier label onto a mood.
func MoodForLabel(label string) model.Mood {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "fear":
		return model.MoodScared
	case "anger":
		return model.MoodFrustrated
	case "sadness", "confusion":
		return model.MoodConfused
	case "joy":
		return model.MoodPositive
	default:
		return model.MoodNeutral
	}
}
