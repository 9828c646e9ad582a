package services

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Change areas pushed to connected dashboards.
const (
	ChangeMoney    = "money"
	ChangeEvents   = "events"
	ChangeComments = "comments"
	ChangeTodos    = "todos"
	ChangeGoals    = "goals"
)

type changeMessage struct {
	Type string `json:"type"`
}

// syncHub tracks which dashboards a household has open so a change made
// by one partner refreshes the other partner's view without polling.
var syncHub = struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]bool
}{
	conns: make(map[string]map[*websocket.Conn]bool),
}

// RegisterSync adds a dashboard connection for a household.
func RegisterSync(householdID string, conn *websocket.Conn) {
	syncHub.mu.Lock()
	defer syncHub.mu.Unlock()
	if syncHub.conns[householdID] == nil {
		syncHub.conns[householdID] = make(map[*websocket.Conn]bool)
	}
	syncHub.conns[householdID][conn] = true
}

// UnregisterSync removes a dashboard connection.
func UnregisterSync(householdID string, conn *websocket.Conn) {
	syncHub.mu.Lock()
	defer syncHub.mu.Unlock()
	delete(syncHub.conns[householdID], conn)
	if len(syncHub.conns[householdID]) == 0 {
		delete(syncHub.conns, householdID)
	}
}

// NotifyChange tells a household's open dashboards that an area changed.
// Fire and forget - never blocks the request path.
func NotifyChange(householdID, area string) {
	go func() {
		syncHub.mu.Lock()
		defer syncHub.mu.Unlock()
		for conn := range syncHub.conns[householdID] {
			if err := conn.WriteJSON(changeMessage{Type: area}); err != nil {
				log.Printf("sync push failed: %v", err)
				conn.Close()
				delete(syncHub.conns[householdID], conn)
			}
		}
	}()
}
