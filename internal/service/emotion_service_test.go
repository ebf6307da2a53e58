package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/pkg/cache"
	"maternal-companion-go/pkg/classifier"
)

func newMemoryStore(t *testing.T) cache.Store {
	t.Helper()
	s, err := cache.NewMemoryStore(cache.DefaultSize)
	require.NoError(t, err)
	return s
}

func TestMoodForLabel(t *testing.T) {
	cases := map[string]model.Mood{
		"fear":      model.MoodScared,
		"anger":     model.MoodFrustrated,
		"sadness":   model.MoodConfused,
		"confusion": model.MoodConfused,
		"joy":       model.MoodPositive,
		"JOY":       model.MoodPositive,
		"neutral":   model.MoodNeutral,
		"surprise":  model.MoodNeutral,
		"disgust":   model.MoodNeutral,
		"":          model.MoodNeutral,
	}
	for label, want := range cases {
		assert.Equal(t, want, MoodForLabel(label), label)
	}
}

func TestDetectPicksTopLabel(t *testing.T) {
	fc := newFakeClassifier("fear")
	c := NewEmotionClassifier(fc, newMemoryStore(t))

	r := c.Detect(context.Background(), "what is happening")
	assert.True(t, r.OK())
	assert.Equal(t, model.MoodScared, r.Mood)
	assert.False(t, r.Cached)
}

func TestDetectFailuresMapToNeutral(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable", func(t *testing.T) {
		r := NewEmotionClassifier(nil, newMemoryStore(t)).Detect(ctx, "hello")
		assert.Equal(t, model.MoodNeutral, r.Mood)
		assert.Equal(t, FailureUnavailable, r.Failure)
	})

	t.Run("call error", func(t *testing.T) {
		fc := newFakeClassifier("joy")
		fc.err = errors.New("connection refused")
		r := NewEmotionClassifier(fc, newMemoryStore(t)).Detect(ctx, "hello")
		assert.Equal(t, model.MoodNeutral, r.Mood)
		assert.Equal(t, FailureCall, r.Failure)
		assert.Error(t, r.Err)
	})

	t.Run("malformed", func(t *testing.T) {
		fc := newFakeClassifier("joy")
		fc.err = fmt.Errorf("%w: {}", classifier.ErrMalformedResponse)
		r := NewEmotionClassifier(fc, newMemoryStore(t)).Detect(ctx, "hello")
		assert.Equal(t, model.MoodNeutral, r.Mood)
		assert.Equal(t, FailureMalformed, r.Failure)
	})

	t.Run("empty scores", func(t *testing.T) {
		fc := newFakeClassifier("joy")
		fc.scores = map[string][]classifier.LabelScore{"hello": {}}
		r := NewEmotionClassifier(fc, newMemoryStore(t)).Detect(ctx, "hello")
		assert.Equal(t, model.MoodNeutral, r.Mood)
		assert.Equal(t, FailureEmpty, r.Failure)
	})
}

func TestDetectCachesByExactText(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClassifier("joy")
	c := NewEmotionClassifier(fc, newMemoryStore(t))

	first := c.Detect(ctx, "I feel so happy today")
	second := c.Detect(ctx, "I feel so happy today")
	assert.Equal(t, first.Mood, second.Mood)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, fc.callsFor("I feel so happy today"))

	// exact match only
	c.Detect(ctx, "i feel so happy today")
	assert.Equal(t, 1, fc.callsFor("i feel so happy today"))
}

func TestDetectDoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClassifier("joy")
	fc.err = errors.New("model loading")
	c := NewEmotionClassifier(fc, newMemoryStore(t))

	assert.False(t, c.Detect(ctx, "hello").OK())
	fc.mu.Lock()
	fc.err = nil
	fc.mu.Unlock()

	r := c.Detect(ctx, "hello")
	assert.True(t, r.OK())
	assert.Equal(t, model.MoodPositive, r.Mood)
	assert.Equal(t, 2, fc.callsFor("hello"))
}

func TestDetectCacheEvictsAfterCapacity(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClassifier("anger")
	c := NewEmotionClassifier(fc, newMemoryStore(t))

	c.Detect(ctx, "first")
	for i := 0; i < cache.DefaultSize-1; i++ {
		c.Detect(ctx, fmt.Sprintf("message %d", i))
	}
	// 50 distinct entries: "first" is still cached
	c.Detect(ctx, "first")
	assert.Equal(t, 1, fc.callsFor("first"))

	// touching "first" made "message 0" the oldest; one more entry evicts it
	c.Detect(ctx, "one more")
	c.Detect(ctx, "message 0")
	assert.Equal(t, 2, fc.callsFor("message 0"))
	assert.Equal(t, 1, fc.callsFor("first"))
}
