package http

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gofiber/fiber/v2"
)

// ETagMiddleware computes a weak ETag from the response body and returns
// 304 Not Modified if the client already has it.
func ETagMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		// Only successful GET responses with a body; /metrics churns
		// every scrape and is never worth revalidating.
		if c.Method() != fiber.MethodGet || c.Response().StatusCode() != 200 || c.Path() == "/metrics" {
			return nil
		}

		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		h := sha256.Sum256(body)
		etag := `W/"` + hex.EncodeToString(h[:8]) + `"`

		c.Set("ETag", etag)

		if c.Get("If-None-Match") == etag {
			c.Status(fiber.StatusNotModified)
			c.Response().ResetBody()
		}

		return nil
	}
}
