package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/logger"
)

// Message is the broadcast envelope. It exists only for the duration
// of one fan-out; nothing here is persisted.
type Message struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	User     string `json:"user"`
	Datetime string `json:"datetime"`
}

const MessageTypeChat = "chat_message"

// Client is one live connection inside a room. Outbound is drained by
// the connection's write pump; the hub never blocks on a slow client.
type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Username string
	Room     string
	Outbound chan Message
	done     chan struct{}
	closed   bool
}

// Done is closed when the hub evicts the client.
func (c *Client) Done() <-chan struct{} { return c.done }

// RoomKey scopes a room to one course.
func RoomKey(courseID uuid.UUID) string {
	return "chat_" + courseID.String()
}

// Hub keeps the room membership table: room key -> set of live
// connections. Join/Leave and broadcast iteration are mutually
// exclusive under one RWMutex, so a connection is never observed
// mid-transition.
type Hub struct {
	mu     sync.RWMutex
	log    *logger.Logger
	rooms  map[string]map[*Client]bool
	buffer int
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:    log.With("component", "ChatHub"),
		rooms:  make(map[string]map[*Client]bool),
		buffer: 16,
	}
}

// Join registers a new connection under the room key and returns its
// client handle.
func (h *Hub) Join(room string, userID uuid.UUID, username string) *Client {
	client := &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Username: username,
		Room:     room,
		Outbound: make(chan Message, h.buffer),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	members, exists := h.rooms[room]
	if !exists {
		members = make(map[*Client]bool)
		h.rooms[room] = members
	}
	members[client] = true

	h.log.Debug("chat client joined", "clientID", client.ID, "room", room)
	return client
}

// Leave unregisters the connection and closes its channels. It is
// idempotent, so every exit path of a connection can call it safely.
func (h *Hub) Leave(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if client.closed {
		return
	}
	client.closed = true

	if members, ok := h.rooms[client.Room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, client.Room)
		}
	}
	close(client.done)
	close(client.Outbound)

	h.log.Debug("chat client left", "clientID", client.ID, "room", client.Room)
}

// Broadcast delivers msg to every connection currently registered in
// the room, the sender included. Sends are non-blocking: a client
// whose buffer is full misses the message rather than stalling the
// room.
func (h *Hub) Broadcast(room string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	for c := range members {
		select {
		case c.Outbound <- msg:
		default:
			h.log.Warn("Dropping chat message; outbound buffer full", "clientID", c.ID, "room", room)
		}
	}
}

// Send delivers msg to a single client. Like Broadcast it never
// blocks, and it is safe against a concurrent Leave: the closed flag
// is checked under the same lock that Leave closes the channel under,
// so an evicted client's Outbound is never written.
func (h *Hub) Send(client *Client, msg Message) {
	if client == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if client.closed {
		return
	}
	select {
	case client.Outbound <- msg:
	default:
		h.log.Warn("Dropping chat message; outbound buffer full", "clientID", client.ID, "room", client.Room)
	}
}

// RoomSize reports the number of live connections in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
