package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/chat"
	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/requestdata"
	"github.com/yungbote/educa-backend/internal/services"
)

var chatUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatHandler runs the websocket side of a chat room: one connection
// per client per course, frames in as {"message": string}, envelopes
// out through the hub.
type ChatHandler struct {
	log               *logger.Logger
	hub               *chat.Hub
	studentService    services.StudentService
	requireEnrollment bool
}

func NewChatHandler(log *logger.Logger, hub *chat.Hub, studentService services.StudentService, requireEnrollment bool) *ChatHandler {
	return &ChatHandler{
		log:               log.With("handler", "ChatHandler"),
		hub:               hub,
		studentService:    studentService,
		requireEnrollment: requireEnrollment,
	}
}

type inboundFrame struct {
	Message *string `json:"message"`
}

func (h *ChatHandler) Room(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", apierr.ErrUnauthorized)
		return
	}
	courseID, err := uuid.Parse(c.Param("courseID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}

	// Room admission mirrors the contents permission only when the
	// deployment asks for it; by default any authenticated user may
	// join.
	if h.requireEnrollment {
		enrolled, err := h.studentService.IsEnrolled(c.Request.Context(), courseID, rd.UserID)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "enrollment_check_failed", err)
			return
		}
		if !enrolled {
			RespondError(c, http.StatusForbidden, "not_enrolled", fmt.Errorf("%w: not enrolled in this course", apierr.ErrForbidden))
			return
		}
	}

	conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("problem initiating websocket", "error", err, "course_id", courseID)
		return
	}

	client := h.hub.Join(chat.RoomKey(courseID), rd.UserID, rd.Username)
	go h.writePump(conn, client)
	h.readLoop(conn, client)
}

// readLoop drives the connection until it drops. The deferred Leave
// guarantees the connection is unregistered on every exit path,
// abnormal termination included.
func (h *ChatHandler) readLoop(conn *websocket.Conn, client *chat.Client) {
	defer func() {
		h.hub.Leave(client)
		_ = conn.Close()
	}()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil || frame.Message == nil {
			h.log.Warn("malformed chat frame", "clientID", client.ID, "room", client.Room)
			// Reply through the hub so the send cannot race an
			// eviction closing Outbound.
			h.hub.Send(client, chat.Message{Type: "error", Message: "expected {\"message\": string}"})
			continue
		}
		h.hub.Broadcast(client.Room, chat.Message{
			Type:     chat.MessageTypeChat,
			Message:  *frame.Message,
			User:     client.Username,
			Datetime: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// writePump is the connection's sole writer. A failed write means the
// peer is gone: the client is evicted without touching the rest of
// the room.
func (h *ChatHandler) writePump(conn *websocket.Conn, client *chat.Client) {
	for msg := range client.Outbound {
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Debug("chat write failed, evicting client", "clientID", client.ID, "error", err)
			h.hub.Leave(client)
			_ = conn.Close()
			return
		}
	}
	// Outbound closed: the hub evicted the client.
	_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
	_ = conn.Close()
}
