package chat

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/logger"
)

func testHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewHub(log)
}

func recv(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.Outbound:
		if !ok {
			t.Fatalf("outbound closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
	}
	return Message{}
}

func TestBroadcastReachesAllRoomMembers(t *testing.T) {
	hub := testHub(t)
	room := RoomKey(uuid.New())

	a := hub.Join(room, uuid.New(), "alice")
	b := hub.Join(room, uuid.New(), "bob")
	if got := hub.RoomSize(room); got != 2 {
		t.Fatalf("RoomSize = %d, want 2", got)
	}

	msg := Message{Type: MessageTypeChat, Message: "hi", User: "alice", Datetime: "2026-01-01T00:00:00Z"}
	hub.Broadcast(room, msg)

	for _, c := range []*Client{a, b} {
		got := recv(t, c)
		if got != msg {
			t.Fatalf("received %+v, want %+v", got, msg)
		}
	}
}

func TestBroadcastPreservesSendOrder(t *testing.T) {
	hub := testHub(t)
	room := RoomKey(uuid.New())
	c := hub.Join(room, uuid.New(), "alice")

	for _, text := range []string{"first", "second", "third"} {
		hub.Broadcast(room, Message{Type: MessageTypeChat, Message: text})
	}
	for _, want := range []string{"first", "second", "third"} {
		if got := recv(t, c).Message; got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestBroadcastScopedToRoom(t *testing.T) {
	hub := testHub(t)
	roomA := RoomKey(uuid.New())
	roomB := RoomKey(uuid.New())

	a := hub.Join(roomA, uuid.New(), "alice")
	b := hub.Join(roomB, uuid.New(), "bob")

	hub.Broadcast(roomA, Message{Type: MessageTypeChat, Message: "only room a"})

	if got := recv(t, a).Message; got != "only room a" {
		t.Fatalf("room a got %q", got)
	}
	select {
	case msg := <-b.Outbound:
		t.Fatalf("room b leaked message %+v", msg)
	default:
	}
}

func TestLeaveRemovesClientAndIsIdempotent(t *testing.T) {
	hub := testHub(t)
	room := RoomKey(uuid.New())

	a := hub.Join(room, uuid.New(), "alice")
	b := hub.Join(room, uuid.New(), "bob")

	hub.Leave(a)
	hub.Leave(a)
	if got := hub.RoomSize(room); got != 1 {
		t.Fatalf("RoomSize = %d, want 1", got)
	}
	select {
	case <-a.Done():
	default:
		t.Fatalf("done not closed after leave")
	}

	hub.Broadcast(room, Message{Type: MessageTypeChat, Message: "still here"})
	if got := recv(t, b).Message; got != "still here" {
		t.Fatalf("remaining client got %q", got)
	}

	hub.Leave(b)
	if got := hub.RoomSize(room); got != 0 {
		t.Fatalf("RoomSize = %d, want 0 after last leave", got)
	}
}

func TestSendReachesSingleClient(t *testing.T) {
	hub := testHub(t)
	room := RoomKey(uuid.New())

	a := hub.Join(room, uuid.New(), "alice")
	b := hub.Join(room, uuid.New(), "bob")

	hub.Send(a, Message{Type: "error", Message: "just for alice"})
	if got := recv(t, a).Message; got != "just for alice" {
		t.Fatalf("got %q", got)
	}
	select {
	case msg := <-b.Outbound:
		t.Fatalf("send leaked to another client: %+v", msg)
	default:
	}
}

func TestSendToEvictedClientIsDropped(t *testing.T) {
	hub := testHub(t)
	room := RoomKey(uuid.New())
	c := hub.Join(room, uuid.New(), "alice")

	hub.Leave(c)

	// The write pump evicts on write failure while the read loop may
	// still reply to a malformed frame; that reply must be dropped,
	// not sent on the closed channel.
	hub.Send(c, Message{Type: "error", Message: "late reply"})

	if _, ok := <-c.Outbound; ok {
		t.Fatalf("evicted client received a message")
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := testHub(t)
	room := RoomKey(uuid.New())
	c := hub.Join(room, uuid.New(), "alice")

	// Nothing drains Outbound here, so everything past the buffer is
	// dropped instead of blocking the room.
	for i := 0; i < cap(c.Outbound)+5; i++ {
		hub.Broadcast(room, Message{Type: MessageTypeChat, Message: "flood"})
	}
	if got := len(c.Outbound); got != cap(c.Outbound) {
		t.Fatalf("buffered %d, want %d", got, cap(c.Outbound))
	}
}
