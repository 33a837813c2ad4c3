package messages

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"bookify/db"
	"bookify/middleware"
	"bookify/models"
	"bookify/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inboundPayload represents what clients send us:
type inboundPayload struct {
	Action  string `json:"action"` // "chat"
	To      string `json:"to,omitempty"`
	Content string `json:"content,omitempty"`
}

// outboundPayload is what we broadcast to every client in a room:
type outboundPayload struct {
	Action    string `json:"action"`
	ID        string `json:"id"`
	SenderID  string `json:"senderId,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp int64  `json:"timestamp"` // unix seconds
}

// WebSocketHandler joins the caller to a conversation room. The room name is
// the canonical pair id of the two participants; the caller must be one of
// them. Browsers cannot set headers on websocket dials, so the token may also
// arrive as a query parameter.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("room")

		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			tokenString = "Bearer " + r.URL.Query().Get("token")
		}
		claims, err := middleware.ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !roomHasMember(room, claims.UserID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   room,
			UserID: claims.UserID,
		}
		hub.register <- client

		// send last 30 messages as chat actions, oldest first. Frames go
		// through the hub so a client that disconnects mid-query is dropped
		// instead of hit on a closed channel.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			opts := options.Find().
				SetSort(bson.D{{Key: "timestamp", Value: -1}}).
				SetLimit(30)

			cur, err := db.MessagesCollection.Find(ctx, bson.M{"room": room}, opts)
			if err != nil {
				log.Println("history find:", err)
				return
			}
			defer cur.Close(ctx)

			var history []roomMessage
			if err := cur.All(ctx, &history); err != nil {
				log.Println("history decode:", err)
				return
			}
			for i := len(history) - 1; i >= 0; i-- {
				if data, err := json.Marshal(chatPayload(history[i])); err == nil {
					hub.deliver(client, data)
				}
			}
		}()

		go writePump(client)
		go readPump(client, hub)
	}
}

// chatPayload shapes a stored message into the frame clients receive, both
// for live broadcasts and history replay.
func chatPayload(m roomMessage) outboundPayload {
	return outboundPayload{
		Action:    "chat",
		ID:        m.ID,
		SenderID:  m.SenderID,
		Content:   m.Message.Message,
		Timestamp: m.Timestamp.Unix(),
	}
}

// roomMessage is the stored message plus its room key.
type roomMessage struct {
	models.Message `bson:",inline"`
	Room           string `bson:"room"`
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(data, &in); err != nil {
			log.Printf("invalid payload: %v", err)
			continue
		}
		if in.Action != "chat" || in.Content == "" {
			continue
		}

		msg := roomMessage{
			Message: models.Message{
				ID:         utils.GenerateRandomDigitString(16),
				SenderID:   c.UserID,
				ReceiverID: counterpartOf(c.Room, c.UserID),
				Message:    in.Content,
				Timestamp:  time.Now(),
			},
			Room: c.Room,
		}
		if _, err := db.MessagesCollection.InsertOne(context.Background(), msg); err != nil {
			log.Printf("insert error: %v", err)
			continue
		}

		if data, err := json.Marshal(chatPayload(msg)); err == nil {
			hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
		}
	}
}
