package messages

import (
	"testing"
	"time"

	"bookify/models"

	"github.com/stretchr/testify/assert"
)

func TestChatPayloadMapsStoredMessage(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	stored := roomMessage{
		Message: models.Message{
			ID:         "m1",
			SenderID:   "alice",
			ReceiverID: "bob",
			Message:    "see you at noon",
			Timestamp:  ts,
		},
		Room: RoomID("alice", "bob"),
	}

	out := chatPayload(stored)

	assert.Equal(t, "chat", out.Action)
	assert.Equal(t, "m1", out.ID)
	assert.Equal(t, "alice", out.SenderID)
	assert.Equal(t, "see you at noon", out.Content)
	assert.Equal(t, ts.Unix(), out.Timestamp)
}
