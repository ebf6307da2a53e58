// Package events defines the mood events emitted after each chat reply.
package events

import (
	"context"
	"time"

	"maternal-companion-go/internal/model"
)

// MoodEvent describes how one message was handled. It carries no message text.
type MoodEvent struct {
	SessionID string             `json:"session_id"`
	Mood      model.Mood         `json:"mood"`
	Context   string             `json:"context"`
	Source    model.MoodSource   `json:"source"`
	Path      model.ResponsePath `json:"path"`
	Failure   string             `json:"failure,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// Publisher sends mood events to a stream.
type Publisher interface {
	Publish(ctx context.Context, event MoodEvent) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, MoodEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
