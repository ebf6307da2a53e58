// Package model contains the data types shared across the service.
package model

import "strings"

// Mood is the coarse emotional or medical category assigned to a message.
type Mood string

const (
	MoodScared     Mood = "scared"
	MoodConfused   Mood = "confused"
	MoodFrustrated Mood = "frustrated"
	MoodMedical    Mood = "medical"
	MoodPositive   Mood = "positive"
	MoodNeutral    Mood = "neutral"
)

// DefaultContext selects the generic fragment of a mood entry.
const DefaultContext = "default"

// DefaultBadgeColor is used for moods without a configuration entry.
const DefaultBadgeColor = "#e3f2fd"

// AllMoods lists every mood in display order.
var AllMoods = []Mood{MoodScared, MoodConfused, MoodFrustrated, MoodMedical, MoodPositive, MoodNeutral}

// Valid reports whether m is part of the mood vocabulary.
func (m Mood) Valid() bool {
	for _, known := range AllMoods {
		if m == known {
			return true
		}
	}
	return false
}

// Title returns the mood with its first letter upper-cased, e.g. "Medical".
func (m Mood) Title() string {
	if m == "" {
		return ""
	}
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}

// MoodEntry is the per-mood configuration: badge color, trigger keywords and
// context-keyed text fragments used to fill response templates.
type MoodEntry struct {
	Color       string
	Keywords    []string
	Info        map[string]string
	Suggestions map[string]string
	Symptoms    map[string]string
}

// MoodBadge is the small mood indicator rendered next to the chat.
type MoodBadge struct {
	Label string `json:"label"`
	Mood  Mood   `json:"mood"`
	Color string `json:"color"`
}

// MoodSource records which step of the resolver decided the mood.
type MoodSource string

const (
	SourceKeyword    MoodSource = "keyword"
	SourceClassifier MoodSource = "classifier"
	SourceFallback   MoodSource = "fallback"
)

// ResponsePath records which path produced a reply.
type ResponsePath string

const (
	PathGenerated ResponsePath = "generated"
	PathTemplate  ResponsePath = "template"
)
