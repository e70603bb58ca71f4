// Package realtime fans pledge snapshots out to connected wall viewers.
package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/ecopledge-dev/ecopledge/internal/types"
)

const writeWait = 10 * time.Second

// Conn is the slice of a websocket connection the hub needs. Satisfied by
// *SafeConn, whose writes are already serialized and deadline-bounded.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Event is the outbound wire shape: the event kind plus a full hydrated
// snapshot, never a delta.
type Event struct {
	Type   string               `json:"type"`
	Room   string               `json:"room"`
	Pledge types.PledgeResponse `json:"pledge"`
}

const (
	EventPledgeCreated = "pledge-created"
	EventPledgeUpdated = "pledge-updated"
)

// Hub tracks the members of the pledge room. Connections join and leave
// explicitly; delivery is best-effort with no replay for late joiners.
type Hub struct {
	mu      sync.RWMutex
	members map[Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		members: make(map[Conn]bool),
	}
}

// Join adds a connection to the room.
func (h *Hub) Join(conn Conn) {
	h.mu.Lock()
	h.members[conn] = true
	h.mu.Unlock()
}

// Leave removes a connection from the room. Safe to call for connections that
// never joined.
func (h *Hub) Leave(conn Conn) {
	h.mu.Lock()
	delete(h.members, conn)
	h.mu.Unlock()
}

// MemberCount reports the current room size.
func (h *Hub) MemberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}

func (h *Hub) PledgeCreated(pledge types.PledgeResponse) {
	h.broadcast(Event{Type: EventPledgeCreated, Room: types.PledgeRoom, Pledge: pledge})
}

func (h *Hub) PledgeUpdated(pledge types.PledgeResponse) {
	h.broadcast(Event{Type: EventPledgeUpdated, Room: types.PledgeRoom, Pledge: pledge})
}

// broadcast delivers the event to every room member. A failed write evicts and
// closes that connection only; the triggering mutation is already committed
// and is never affected.
func (h *Hub) broadcast(event Event) {
	h.mu.RLock()
	if len(h.members) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy the member set to avoid holding the lock during writes
	membersCopy := make([]Conn, 0, len(h.members))
	for conn := range h.members {
		membersCopy = append(membersCopy, conn)
	}
	h.mu.RUnlock()

	for _, conn := range membersCopy {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Failed to broadcast %s to client: %v", event.Type, err)
			h.Leave(conn)
			conn.Close()
		}
	}
}
