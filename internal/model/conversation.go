package model

import "time"

// Turn is one user message and the assistant reply to it.
type Turn struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	Mood      Mood      `json:"mood"`
	CreatedAt LocalTime `json:"createdAt"`
}

// NewTurn stamps a turn with the current time.
func NewTurn(user, assistant string, mood Mood) Turn {
	return Turn{User: user, Assistant: assistant, Mood: mood, CreatedAt: LocalTime(time.Now())}
}

// ChatResult is what a single chat interaction returns to the UI.
type ChatResult struct {
	SessionID string       `json:"sessionId"`
	Response  string       `json:"response"`
	Mood      Mood         `json:"mood"`
	Context   string       `json:"context"`
	Source    MoodSource   `json:"source"`
	Path      ResponsePath `json:"path"`
	Badge     MoodBadge    `json:"badge"`
	History   []Turn       `json:"history"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}
