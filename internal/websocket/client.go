package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
	sendBuffer = 16
)

type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewUpgrader accepts browser origins from allowed; "*" or an empty list
// accepts any origin. Requests without an Origin header always pass.
func NewUpgrader(allowed []string) *websocket.Upgrader {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		set[origin] = true
	}
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(set) == 0 || set["*"] || set[origin]
		},
	}
}

// ServeWS upgrades the request and streams balance updates of customerID
// until the peer goes away.
func ServeWS(w http.ResponseWriter, r *http.Request, upgrader *websocket.Upgrader, hub *Hub, customerID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade for customer %s failed: %v", customerID, err)
		return
	}
	client := &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	hub.Register(customerID, client)
	go client.writePump(hub, customerID)
	client.readPump(hub, customerID)
}

func (c *Client) readPump(hub *Hub, customerID string) {
	defer func() {
		hub.Unregister(customerID, c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump(hub *Hub, customerID string) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		hub.Unregister(customerID, c)
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
