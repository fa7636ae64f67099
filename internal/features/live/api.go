package live

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type LiveApi struct {
	hub *Hub
}

func NewLiveApi(hub *Hub) *LiveApi {
	return &LiveApi{hub: hub}
}

// Setup registers the websocket upgrade route
func (h *LiveApi) Setup(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/:table", websocket.New(h.hub.Handle))
}
