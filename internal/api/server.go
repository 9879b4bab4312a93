package api

import (
	"encoding/json"
	"log"
	"net/http"

	"securevault-api/internal/config"
	"securevault-api/internal/database"
	"securevault-api/internal/websocket"
)

type Server struct {
	config *config.Config
	store  *database.Store
	wsHub  *websocket.Hub
}

func NewServer(cfg *config.Config, store *database.Store, wsHub *websocket.Hub) *Server {
	return &Server{
		config: cfg,
		store:  store,
		wsHub:  wsHub,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

// publishEvent notifies the user's connected devices about a change. Delivery
// is best effort; a failure never affects the HTTP response.
func (s *Server) publishEvent(userID, eventType string, payload interface{}) {
	if s.wsHub == nil {
		return
	}

	eventMsg := map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	}
	eventBytes, err := json.Marshal(eventMsg)
	if err != nil {
		log.Printf("ERROR: Failed to marshal %s event for user %s: %v", eventType, userID, err)
		return
	}

	s.wsHub.PublishEvent(userID, eventBytes)
}
