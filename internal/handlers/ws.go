package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ecopledge-dev/ecopledge/internal/realtime"
	"github.com/ecopledge-dev/ecopledge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// ControlMessage is an inbound room command from a wall viewer.
type ControlMessage struct {
	Type string `json:"type"` // "join-room" or "leave-room"
}

// SocketHandler upgrades pledge wall connections and relays room membership
// commands to the hub.
type SocketHandler struct {
	hub *realtime.Hub
}

func NewSocketHandler(hub *realtime.Hub) *SocketHandler {
	return &SocketHandler{hub: hub}
}

func (h *SocketHandler) PledgeSocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	clientID := uuid.NewString()

	// All writers share one serialized connection: the ping loop, the welcome
	// message, and hub broadcasts from mutating request handlers.
	safe := realtime.NewSafeConn(conn)

	// Set up connection parameters
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	// Clean up when the connection closes. Room removal on disconnect is
	// passive: leaving the hub here covers clients that never sent leave-room.
	defer func() {
		h.hub.Leave(safe)
		safe.Close()

		log.Printf("WebSocket connection closed for client %s", clientID)
	}()

	// Send welcome message; joining the room stays explicit
	err = safe.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
		"room":    types.PledgeRoom,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		// Send pings periodically
		for range ticker.C {
			if err := safe.Ping(); err != nil {
				log.Printf("Ping failed for client %s: %v", clientID, err)
				return
			}
		}
	}()

	for {
		// Set read deadline for each message
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for client %s: %v", clientID, err)
			break
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for client %s: %v", clientID, err)
			}
			break
		}

		var control ControlMessage

		if err := json.Unmarshal(message, &control); err != nil {
			log.Printf("Ignoring malformed message from client %s: %v", clientID, err)
			continue
		}

		switch control.Type {
		case "join-room":
			h.hub.Join(safe)
			log.Printf("Client %s joined %s", clientID, types.PledgeRoom)
		case "leave-room":
			h.hub.Leave(safe)
			log.Printf("Client %s left %s", clientID, types.PledgeRoom)
		default:
			log.Printf("Unknown message type %q from client %s", control.Type, clientID)
		}
	}
}
