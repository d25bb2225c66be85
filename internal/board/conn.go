package board

import (
	"sync"

	"github.com/gorilla/websocket"
)

// A client-side relay connection. Writes are serialized; reads happen
// on the caller's Listen goroutine.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// Connects to the relay's websocket endpoint, e.g. ws://host:8080/ws
func Dial(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Conn{ws: ws}, nil
}

func (c *Conn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Delivers every received payload to the handler until the connection
// drops. Returns the read error that ended the loop.
func (c *Conn) Listen(handler func(data []byte)) error {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		handler(data)
	}
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
