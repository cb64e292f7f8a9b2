package devserver

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/push"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans push messages out to the sockets subscribed to each session.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]struct{})
	}
	h.sessions[sessionID][conn] = struct{}{}
}

func (h *Hub) Unregister(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns := h.sessions[sessionID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.sessions, sessionID)
		}
	}
	conn.Close()
}

// BroadcastNewOrder pushes the full order payload to its session.
func (h *Hub) BroadcastNewOrder(order models.Order) {
	h.broadcast(order.SessionID, Message{
		Type:    push.TypeNewOrder,
		Payload: order,
	})
}

// BroadcastStatusUpdate signals a status change. The payload is informational
// only; clients re-fetch for the authoritative state.
func (h *Hub) BroadcastStatusUpdate(sessionID, orderID string) {
	h.broadcast(sessionID, Message{
		Type:    push.TypeOrderStatusUpdated,
		Payload: map[string]string{"orderId": orderID},
	})
}

func (h *Hub) broadcast(sessionID string, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("devserver: marshaling push message: %v", err)
		return
	}

	for conn := range h.sessions[sessionID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("devserver: sending to session %s client: %v", sessionID, err)
		}
	}
}
