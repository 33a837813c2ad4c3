package messages

import (
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type unicastMsg struct {
	Client *Client
	Data   []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	unicast    chan unicastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		unicast:    make(chan unicastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
					c.Conn.Close()
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case u := <-h.unicast:
			h.mu.Lock()
			if conns := h.rooms[u.Client.Room]; conns != nil && conns[u.Client] {
				select {
				case u.Client.Send <- u.Data:
				default:
					close(u.Client.Send)
					delete(conns, u.Client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// deliver queues a frame for one client. The send runs inside the hub loop,
// serialized with unregister, so a frame for a client that already left is
// dropped instead of panicking on its closed channel.
func (h *Hub) deliver(c *Client, data []byte) {
	select {
	case h.unicast <- unicastMsg{Client: c, Data: data}:
	case <-h.done:
	}
}

// Stop closes every client connection and ends the Run loop.
func (h *Hub) Stop() {
	close(h.done)
}
