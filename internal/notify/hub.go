package notify

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	userClients   = make(map[uint]map[*websocket.Conn]bool)
	userClientsMu sync.RWMutex
)

const writeWait = 10 * time.Second

// RegisterClient attaches a websocket connection to a user's inbox stream.
func RegisterClient(userID uint, conn *websocket.Conn) {
	userClientsMu.Lock()
	defer userClientsMu.Unlock()

	if userClients[userID] == nil {
		userClients[userID] = make(map[*websocket.Conn]bool)
	}
	userClients[userID][conn] = true
}

func UnregisterClient(userID uint, conn *websocket.Conn) {
	userClientsMu.Lock()
	defer userClientsMu.Unlock()

	if clients, exists := userClients[userID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(userClients, userID)
		}
	}
}

// BroadcastRefresh nudges connected clients to refetch their notification
// inbox. A nil userID reaches every connected client (global notification).
func BroadcastRefresh(userID *uint) {
	userClientsMu.RLock()
	var targets []*websocket.Conn
	if userID == nil {
		for _, clients := range userClients {
			for conn := range clients {
				targets = append(targets, conn)
			}
		}
	} else if clients, exists := userClients[*userID]; exists {
		for conn := range clients {
			targets = append(targets, conn)
		}
	}
	userClientsMu.RUnlock()

	for _, conn := range targets {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "Notifications updated",
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			userClientsMu.Lock()
			for id, clients := range userClients {
				if clients[conn] {
					delete(clients, conn)
					if len(clients) == 0 {
						delete(userClients, id)
					}
				}
			}
			userClientsMu.Unlock()
			conn.Close()
		}
	}
}
