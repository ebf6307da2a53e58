package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/pkg/events"
)

func TestNewMessage(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	msg, err := newMessage(events.MoodEvent{
		SessionID: "s-1",
		Mood:      model.MoodMedical,
		Context:   "bleeding",
		Source:    model.SourceKeyword,
		Path:      model.PathTemplate,
		Failure:   "unavailable",
		Timestamp: ts,
	})
	require.NoError(t, err)

	assert.Equal(t, "s-1", string(msg.Key))
	assert.Equal(t, ts, msg.Time)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "medical", decoded["mood"])
	assert.Equal(t, "bleeding", decoded["context"])
	assert.Equal(t, "keyword", decoded["source"])
	assert.Equal(t, "template", decoded["path"])
	assert.NotContains(t, decoded, "message")
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, splitBrokers(""))
}
