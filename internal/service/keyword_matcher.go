package service

import (
	"strings"

	"maternal-companion-go/internal/model"
)

// KeywordPriority is the order in which keyword sets are checked. Medical
// terms always win over emotional ones.
var KeywordPriority = []model.Mood{model.MoodMedical, model.MoodScared, model.MoodConfused, model.MoodFrustrated}

// KeywordMatcher finds trigger keywords by substring containment.
type KeywordMatcher struct {
	order    []model.Mood
	keywords map[model.Mood][]string
}

// NewKeywordMatcher builds a matcher over the keywords of catalog, checked in
// the given priority order.
func NewKeywordMatcher(catalog map[model.Mood]model.MoodEntry, order []model.Mood) *KeywordMatcher {
	keywords := make(map[model.Mood][]string, len(order))
	for _, mood := range order {
		for _, kw := range catalog[mood].Keywords {
			keywords[mood] = append(keywords[mood], strings.ToLower(kw))
		}
	}
	return &KeywordMatcher{order: order, keywords: keywords}
}

// Match returns the first mood, in priority order, with a keyword contained in
// lowerText, plus that keyword. With moods given, only those moods are
// considered; the priority order still applies.
func (m *KeywordMatcher) Match(lowerText string, moods ...model.Mood) (model.Mood, string, bool) {
	for _, mood := range m.order {
		if len(moods) > 0 && !containsMood(moods, mood) {
			continue
		}
		for _, kw := range m.keywords[mood] {
			if strings.Contains(lowerText, kw) {
				return mood, kw, true
			}
		}
	}
	return "", "", false
}

func containsMood(moods []model.Mood, mood model.Mood) bool {
	for _, m := range moods {
		if m == mood {
			return true
		}
	}
	return false
}
