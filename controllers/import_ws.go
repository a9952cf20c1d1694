package controller

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"zapcontacts/utils"
)

// ImportProgress is a single progress update pushed while an import runs.
type ImportProgress struct {
	Message string `json:"message"`
	Percent int    `json:"percent"`
	Status  string `json:"status"` // running, completed, failed
}

var (
	importSubscribers   = make(map[uint][]chan ImportProgress)
	importSubscribersMu sync.Mutex
)

// PublishImportProgress fans an update out to every websocket watching the
// user's import. Slow subscribers are skipped rather than blocked on.
func PublishImportProgress(userID uint, progress ImportProgress) {
	importSubscribersMu.Lock()
	defer importSubscribersMu.Unlock()

	for _, ch := range importSubscribers[userID] {
		select {
		case ch <- progress:
		default:
		}
	}
}

func subscribeImportProgress(userID uint) chan ImportProgress {
	ch := make(chan ImportProgress, 16)
	importSubscribersMu.Lock()
	importSubscribers[userID] = append(importSubscribers[userID], ch)
	importSubscribersMu.Unlock()
	return ch
}

func unsubscribeImportProgress(userID uint, ch chan ImportProgress) {
	importSubscribersMu.Lock()
	defer importSubscribersMu.Unlock()

	subs := importSubscribers[userID]
	for i, sub := range subs {
		if sub == ch {
			importSubscribers[userID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(importSubscribers[userID]) == 0 {
		delete(importSubscribers, userID)
	}
}

// HandleImportProgressWS streams import progress updates to the client.
// The first message must carry a valid access token, since websocket
// upgrades bypass the JWT middleware.
func HandleImportProgressWS(c *websocket.Conn) {
	defer c.Close()

	var input struct {
		AccessToken string `json:"access_token"`
	}

	if err := c.ReadJSON(&input); err != nil {
		log.Printf("import ws: error reading auth message: %v", err)
		return
	}

	claims, err := utils.ParseJWTToken(input.AccessToken)
	if err != nil {
		_ = c.WriteJSON(ImportProgress{Message: "unauthorized", Status: "failed"})
		return
	}

	ch := subscribeImportProgress(claims.UserID)
	defer unsubscribeImportProgress(claims.UserID, ch)

	for progress := range ch {
		if err := c.WriteJSON(progress); err != nil {
			log.Printf("import ws: error writing JSON: %v", err)
			return
		}
		if progress.Status == "completed" || progress.Status == "failed" {
			return
		}
	}
}
