package live

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/spf13/jwalterweatherman"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 1024,
}

// HandleWebsocket streams counter updates to one browser client until either
// side goes away.
func (f *Feed) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ERROR.Printf("live: unable to upgrade connection: %v", err)
		return
	}
	defer func() {
		if err := ws.Close(); err != nil {
			log.DEBUG.Printf("live: unable to close websocket: %v", err)
		}
	}()

	updates, unsubscribe := f.Subscribe()
	defer unsubscribe()

	// the client never sends anything useful; reading detects a close
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	if counts, ok := f.Latest(); ok {
		ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := ws.WriteJSON(counts); err != nil {
			log.DEBUG.Printf("live: unable to write to websocket: %v", err)
			return
		}
	}

	for {
		select {
		case <-gone:
			return
		case counts, ok := <-updates:
			if !ok {
				ws.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteJSON(counts); err != nil {
				log.DEBUG.Printf("live: unable to write to websocket: %v", err)
				return
			}
		}
	}
}
