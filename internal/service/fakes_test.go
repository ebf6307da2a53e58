package service

import (
	"context"
	"sync"

	"maternal-companion-go/pkg/classifier"
	"maternal-companion-go/pkg/events"
)

// fakeClassifier returns the scores configured per text, or err.
type fakeClassifier struct {
	mu     sync.Mutex
	scores map[string][]classifier.LabelScore
	label  string
	err    error
	calls  map[string]int
}

func newFakeClassifier(label string) *fakeClassifier {
	return &fakeClassifier{label: label, calls: map[string]int{}}
}

func (f *fakeClassifier) Classify(_ context.Context, text string) ([]classifier.LabelScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[text]++
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.scores[text]; ok {
		return s, nil
	}
	return []classifier.LabelScore{
		{Label: "neutral", Score: 0.1},
		{Label: f.label, Score: 0.8},
		{Label: "surprise", Score: 0.1},
	}, nil
}

func (f *fakeClassifier) callsFor(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[text]
}

func (f *fakeClassifier) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// fakeLLM answers every prompt with reply, or err.
type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Model() string { return "fake-model" }

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.MoodEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.MoodEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }
