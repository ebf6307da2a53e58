package service

import "maternal-companion-go/internal/model"

// MoodCatalog holds the configuration entry of every mood that has one.
// positive and neutral have no entry; they use model.DefaultBadgeColor.
var MoodCatalog = map[model.Mood]model.MoodEntry{
	model.MoodScared: {
		Color:    "#ffdddd",
		Keywords: []string{"scared", "afraid", "worried", "anxious", "nervous", "fear"},
		Info: map[string]string{
			model.DefaultContext: "Pregnancy can bring many new feelings and concerns",
			"pain":               "Some discomfort is normal, but persistent pain should be checked",
			"baby":               "Your baby is well protected in the womb",
		},
	},
	model.MoodConfused: {
		Color:    "#fff4dd",
		Keywords: []string{"confused", "unsure", "understand", "question", "what if", "how to"},
		Info: map[string]string{
			model.DefaultContext: "Pregnancy involves many changes that can be confusing",
			"nutrition":          "Focus on balanced meals with folate, iron and calcium",
			"exercise":           "Moderate exercise like walking is generally safe",
		},
	},
	model.MoodFrustrated: {
		Color:    "#ffe5dd",
		Keywords: []string{"frustrated", "angry", "annoyed", "irritated", "fed up"},
		Suggestions: map[string]string{
			model.DefaultContext: "gentle prenatal yoga or meditation",
			"sleep":              "using pregnancy pillows for better support",
			"discomfort":         "warm baths or maternity support belts",
		},
	},
	model.MoodMedical: {
		Color:    "#ffebee",
		Keywords: []string{"pain", "bleeding", "contraction", "pressure", "symptom", "doctor"},
		Symptoms: map[string]string{
			model.DefaultContext: "symptoms",
			"severe":             "severe symptoms",
			"bleeding":           "any bleeding",
		},
	},
}

// ResponseTemplates holds the ordered fallback templates of each mood.
// Placeholders: {mood}, {info}, {suggestion}, {symptom}.
var ResponseTemplates = map[model.Mood][]string{
	model.MoodScared: {
		"It's completely normal to feel {mood} during pregnancy. Many expectant mothers experience similar feelings. Try taking some deep breaths - inhale for 4 counts, hold for 4, exhale for 6.",
		"I hear that you're feeling {mood}. Pregnancy can bring up many emotions. Remember, you're stronger than you think. Would you like me to suggest some relaxation techniques?",
		"Feeling {mood} is understandable. Have you tried talking to your healthcare provider about these concerns? They can offer professional reassurance.",
	},
	model.MoodConfused: {
		"Let me clarify that for you. {info} If you need more details, your prenatal classes or healthcare provider can offer additional guidance.",
		"That's a common question. The key points are: {info} Does this help explain things better?",
		"I understand the confusion. Here's what you should know: {info} Bookmark this information for future reference.",
	},
	model.MoodFrustrated: {
		"Pregnancy discomforts can definitely be frustrating. Try {suggestion} to help alleviate this. Many moms find this helpful.",
		"I hear your frustration. These feelings are valid. Remember to be gentle with yourself during this time.",
		"This sounds challenging. Have you considered {suggestion}? It might help ease the frustration you're feeling.",
	},
	model.MoodMedical: {
		"For this {symptom}, I recommend contacting your healthcare provider for proper evaluation. It's always best to get medical advice directly.",
		"This sounds like something to discuss with your doctor. Would you like help finding nearby clinics?",
		"Pregnancy symptoms can vary, but for {symptom}, professional medical advice is important.",
	},
	model.MoodPositive: {
		"That's wonderful to hear! Enjoy these positive moments in your pregnancy journey.",
		"I'm so glad you're feeling {mood}! This is a special time to cherish.",
		"What a beautiful sentiment! Savor these happy pregnancy moments.",
	},
	model.MoodNeutral: {
		"I'm here to support you throughout your pregnancy. Feel free to share anything on your mind.",
		"Thank you for sharing. How are you feeling about your pregnancy today?",
		"I'm listening. Pregnancy brings many experiences - would you like to talk more?",
	},
}

// BadgeFor returns the mood indicator shown next to the conversation.
func BadgeFor(mood model.Mood) model.MoodBadge {
	color := model.DefaultBadgeColor
	if entry, ok := MoodCatalog[mood]; ok && entry.Color != "" {
		color = entry.Color
	}
	return model.MoodBadge{
		Label: "Detected: " + mood.Title(),
		Mood:  mood,
		Color: color,
	}
}

// fragment looks up a context-keyed fragment, falling back to the default
// context and then to the empty string.
func fragment(fragments map[string]string, context string) string {
	if v, ok := fragments[context]; ok {
		return v
	}
	return fragments[model.DefaultContext]
}
