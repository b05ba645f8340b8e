package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHeader carries the opaque per-load identity the client generates.
// There is no account system behind it; the id keys the profile and audit
// records for one browser session.
const SessionHeader = "X-Session-Id"

func SessionMiddleware(ctx *fiber.Ctx) error {
	raw := ctx.Get(SessionHeader)
	if raw == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing session id"})
	}

	sessionId, err := uuid.Parse(raw)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid session id"})
	}

	ctx.Locals("session_id", sessionId.String())
	return ctx.Next()
}
