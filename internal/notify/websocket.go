package notify

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Handler is the /ws/notifications endpoint. Auth happens before the
// upgrade: the HTTP middleware stores the employer id in locals and the
// upgrade handler passes it along.
func Handler(hub *Hub) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		employerID, ok := conn.Locals("employerId").(uuid.UUID)
		if !ok {
			conn.Close()
			return
		}

		client := &Client{
			ID:         uuid.New().String(),
			EmployerID: employerID,
			Send:       make(chan []byte, 32),
		}
		hub.RegisterClient(client)
		defer hub.UnregisterClient(client)

		done := make(chan struct{})
		go func() {
			defer close(done)
			// Drain reads so pings/close frames are handled; clients
			// never send application data on this socket.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case payload, ok := <-client.Send:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
