package refapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// bearerAuth rejects requests whose Authorization header is not "Bearer {token}".
func bearerAuth(token string) fiber.Handler {
	expected := "Bearer " + token
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) != expected {
			return fiber.NewError(fiber.StatusUnauthorized, MsgAuthFailed)
		}
		return c.Next()
	}
}

// requestLogger logs one line per request. Errors from later handlers are rendered here so
// that the logged status is the one the client sees.
func requestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			if c.Response().StatusCode() >= fiber.StatusInternalServerError {
				log.WithError(err).Error("Request failed")
			}
		}

		log.WithFields(logrus.Fields{
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start),
			"method":  c.Method(),
			"path":    c.Path(),
			"handler": c.Route().Name,
		}).Info("Request")
		return nil
	}
}
