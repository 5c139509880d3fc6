package lookup

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the lookup routes. throttle bounds requests
// per client per window and replies 429 beyond the limit.
func RegisterRoutes(app *fiber.App, handler *Handler, throttle fiber.Handler) {
	app.Get("/lyrics", throttle, handler.GetLyrics)
}
