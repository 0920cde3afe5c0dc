package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ShashankBagda/AI-Restaurant/live"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // LAN deployment, clients connect from arbitrary origins
	},
}

const writeWait = 5 * time.Second

type LiveController struct {
	Hub *live.Hub
}

func NewLiveController(hub *live.Hub) *LiveController {
	return &LiveController{Hub: hub}
}

// OrdersSocket bridges a hub subscription onto a websocket. Viewers are
// already authorized at the API layer before they subscribe; the socket
// itself carries no role distinction.
func (lc *LiveController) OrdersSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	ch := lc.Hub.Subscribe()
	defer lc.Hub.Unsubscribe(ch)
	defer ws.Close()

	// Reader goroutine only watches for the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				// Hub dropped us as a stale subscriber.
				return
			}
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(ev); err != nil {
				utils.InfoLogger.Printf("Live viewer write failed, closing: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
