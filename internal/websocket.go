package prayerlog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func newUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

func (s *State) AddClient(client *websocket.Conn) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client] = true
}

func (s *State) RemoveClient(client *websocket.Conn) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, client)
}

func (s *State) ClientCount() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// NotifyAllClients sends message as JSON to every connected client, dropping
// clients that fail.
func (s *State) NotifyAllClients(message any) {
	jsonMessage, err := json.Marshal(message)
	if err != nil {
		log.Error("Error marshaling message", "err", err)
		return
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for client := range s.clients {
		if err := client.WriteMessage(websocket.TextMessage, jsonMessage); err != nil {
			log.Error("Error sending message to client", "err", err, "to", client.RemoteAddr())
			client.Close()
			delete(s.clients, client)
		}
	}
}

// notifyClient writes to a single client under the same lock broadcasts use.
func (s *State) notifyClient(client *websocket.Conn, message any) {
	jsonMessage, err := json.Marshal(message)
	if err != nil {
		log.Error("Error marshaling message", "err", err)
		return
	}
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if err := client.WriteMessage(websocket.TextMessage, jsonMessage); err != nil {
		log.Error("Error sending message to client", "err", err, "to", client.RemoteAddr())
	}
}

type GuideMessage struct {
	Event  string  `json:"event"`
	Stages []Stage `json:"stages"`
}

// @Summary WebSocket connection endpoint
// @Description Pushes stats after every change. Send "get_stats" or "get_guide" to request them.
// @Tags websocket
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {string} string "Bad Request"
// @Router /connect [get]
func (s *Server) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Websocket upgrade failed", "err", err)
		return
	}
	log.Info("Client connected", "addr", conn.RemoteAddr())

	s.State.AddClient(conn)
	defer func() {
		s.State.RemoveClient(conn)
		conn.Close()
	}()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			log.Info("Client disconnected", "addr", conn.RemoteAddr(), "err", err)
			return
		}
		switch strings.TrimSpace(string(p)) {
		case "get_stats":
			s.State.notifyClient(conn, StatsMessage{Event: "stats", Stats: s.State.Stats()})
		case "get_guide":
			s.State.notifyClient(conn, GuideMessage{Event: "guide", Stages: s.Guide.Stages()})
		default:
			log.Warn("Unknown websocket message", "msg", string(p))
		}
	}
}
