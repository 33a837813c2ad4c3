package messages

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"bookify/db"
	"bookify/models"
	"bookify/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RoomID returns the canonical room name for a pair of users, independent of
// who initiated the conversation.
func RoomID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

func roomHasMember(room, uid string) bool {
	parts := strings.SplitN(room, ":", 2)
	return len(parts) == 2 && (parts[0] == uid || parts[1] == uid)
}

func counterpartOf(room, uid string) string {
	parts := strings.SplitN(room, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	if parts[0] == uid {
		return parts[1]
	}
	return parts[0]
}

// Conversation is a derived grouping, not a stored document: all messages
// sharing a counterpart with the current user collapse into one entry.
type Conversation struct {
	CounterpartID string    `json:"counterpartId"`
	Room          string    `json:"room"`
	LastMessage   string    `json:"lastMessage"`
	LastSenderID  string    `json:"lastSenderId"`
	LastAt        time.Time `json:"lastAt"`
	MessageCount  int       `json:"messageCount"`
}

// DeriveConversations groups messages by counterpart, keeping the latest
// message per group, newest conversation first.
func DeriveConversations(msgs []models.Message, uid string) []Conversation {
	byCounterpart := make(map[string]*Conversation)
	for _, m := range msgs {
		counterpart := m.ReceiverID
		if m.SenderID != uid {
			counterpart = m.SenderID
		}
		if counterpart == "" || counterpart == uid {
			continue
		}
		conv, ok := byCounterpart[counterpart]
		if !ok {
			conv = &Conversation{
				CounterpartID: counterpart,
				Room:          RoomID(uid, counterpart),
			}
			byCounterpart[counterpart] = conv
		}
		conv.MessageCount++
		if m.Timestamp.After(conv.LastAt) {
			conv.LastMessage = m.Message
			conv.LastSenderID = m.SenderID
			conv.LastAt = m.Timestamp
		}
	}

	out := make([]Conversation, 0, len(byCounterpart))
	for _, c := range byCounterpart {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastAt.After(out[j].LastAt) })
	return out
}

// SendMessage stores a direct message outside the websocket path.
func SendMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if msg.ReceiverID == "" || msg.Message == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}

	stored := roomMessage{
		Message: models.Message{
			ID:         utils.GenerateRandomDigitString(16),
			SenderID:   uid,
			ReceiverID: msg.ReceiverID,
			Message:    msg.Message,
			Timestamp:  time.Now(),
		},
		Room: RoomID(uid, msg.ReceiverID),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.MessagesCollection.InsertOne(ctx, stored); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"message": stored.Message})
}

// GetConversations scans the caller's messages and returns the derived
// conversation list.
func GetConversations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{{"senderId": uid}, {"receiverId": uid}}}
	cur, err := db.MessagesCollection.Find(ctx, filter)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err == nil {
			msgs = append(msgs, m)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"conversations": DeriveConversations(msgs, uid),
	})
}

// GetMessagesWith returns the message history with one counterpart, oldest
// first.
func GetMessagesWith(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	counterpart := ps.ByName("counterpartId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := db.MessagesCollection.Find(ctx, bson.M{"room": RoomID(uid, counterpart)}, opts)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err == nil {
			msgs = append(msgs, m)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}
