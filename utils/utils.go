package utils

import (
	"fmt"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var eventLog = logrus.New()

// GenerateRateLimitKey creates a unique key for rate limiting
func GenerateRateLimitKey(userID uint, path string) string {
	return fmt.Sprintf("rl:%d:%s", userID, path)
}

// LogEvent logs an event with structured data
func LogEvent(eventType string, data map[string]interface{}) {
	eventLog.WithFields(logrus.Fields(data)).Info(eventType)
}

// ErrorResponse creates a standardized error response. Server-side failures
// are also reported to Sentry.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"error":   message,
	}
	if err != nil {
		response["details"] = err.Error()
		if status >= fiber.StatusInternalServerError {
			sentry.CaptureException(err)
		}
	}
	return c.Status(status).JSON(response)
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// ParseUint safely parses a string to uint
func ParseUint(s string) uint {
	i, _ := strconv.ParseUint(s, 10, 32)
	return uint(i)
}
