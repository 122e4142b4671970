package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mettaway/ventara/internal/utils"
)

// UnknownClientKey is the shared bucket for requests without proxy headers.
const UnknownClientKey = "unknown"

// ClientKey identifies the caller for rate limiting: the first
// X-Forwarded-For entry, then X-Real-IP.
func ClientKey(c *fiber.Ctx) string {
	forwarded, _, _ := strings.Cut(c.Get(fiber.HeaderXForwardedFor), ",")

	if key := utils.FirstNonEmpty(forwarded, c.Get("X-Real-IP")); key != "" {
		return key
	}
	return UnknownClientKey
}
