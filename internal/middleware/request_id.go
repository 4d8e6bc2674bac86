package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request id in and out
const HeaderRequestID = "X-Request-ID"

// RequestIDKey is the fiber locals key holding the request id
const RequestIDKey = "request_id"

// RequestID reuses the caller's X-Request-ID or generates one
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Locals(RequestIDKey, reqID)
		c.Set(HeaderRequestID, reqID)

		return c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or ""
func GetRequestID(c *fiber.Ctx) string {
	if val, ok := c.Locals(RequestIDKey).(string); ok {
		return val
	}
	return ""
}
