package lookup

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/refrainlabs/refrain/src/song"
)

// Resolver is the slice of the service the HTTP layer needs.
type Resolver interface {
	Resolve(ctx context.Context, query song.Query) Response
}

// Handler handles lyrics lookup requests.
type Handler struct {
	resolver Resolver
}

// NewHandler creates a new lookup handler.
func NewHandler(resolver Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// GetLyrics resolves ?title=...&artist=... into a JSON response.
// A missing title is the only client error; a lookup that found
// nothing is still a 200 with success:false.
func (h *Handler) GetLyrics(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.Query("title"))
	artist := strings.TrimSpace(c.Query("artist"))

	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(Response{
			Success: false,
			Artist:  artist,
			Error:   "missing title",
		})
	}

	resp := h.resolver.Resolve(c.Context(), song.Query{Title: title, Artist: artist})
	return c.JSON(resp)
}
