package messages

import (
	"testing"
	"time"

	"bookify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomIDIsCanonical(t *testing.T) {
	assert.Equal(t, RoomID("alice", "bob"), RoomID("bob", "alice"))
	assert.Equal(t, "alice:bob", RoomID("bob", "alice"))
}

func TestRoomHasMember(t *testing.T) {
	room := RoomID("alice", "bob")
	assert.True(t, roomHasMember(room, "alice"))
	assert.True(t, roomHasMember(room, "bob"))
	assert.False(t, roomHasMember(room, "carol"))
	assert.False(t, roomHasMember("notaroom", "alice"))
}

func TestCounterpartOf(t *testing.T) {
	room := RoomID("alice", "bob")
	assert.Equal(t, "bob", counterpartOf(room, "alice"))
	assert.Equal(t, "alice", counterpartOf(room, "bob"))
}

func TestDeriveConversations(t *testing.T) {
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		{SenderID: "me", ReceiverID: "bob", Message: "hi bob", Timestamp: base},
		{SenderID: "bob", ReceiverID: "me", Message: "hey", Timestamp: base.Add(time.Minute)},
		{SenderID: "carol", ReceiverID: "me", Message: "booking question", Timestamp: base.Add(2 * time.Hour)},
		{SenderID: "me", ReceiverID: "bob", Message: "still there?", Timestamp: base.Add(3 * time.Hour)},
	}

	convs := DeriveConversations(msgs, "me")
	require.Len(t, convs, 2)

	// Newest conversation first.
	assert.Equal(t, "bob", convs[0].CounterpartID)
	assert.Equal(t, "still there?", convs[0].LastMessage)
	assert.Equal(t, "me", convs[0].LastSenderID)
	assert.Equal(t, 3, convs[0].MessageCount)
	assert.Equal(t, RoomID("me", "bob"), convs[0].Room)

	assert.Equal(t, "carol", convs[1].CounterpartID)
	assert.Equal(t, 1, convs[1].MessageCount)
}

func TestDeriveConversationsSkipsSelfAndEmpty(t *testing.T) {
	msgs := []models.Message{
		{SenderID: "me", ReceiverID: "me", Message: "note to self", Timestamp: time.Now()},
		{SenderID: "me", ReceiverID: "", Message: "dangling", Timestamp: time.Now()},
	}
	assert.Empty(t, DeriveConversations(msgs, "me"))
}
