package handlers

import (
	"uandme/config"
	"uandme/middleware"
	"uandme/services"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SyncWebSocketUpgrade is middleware to upgrade HTTP to WebSocket.
// Browsers cannot set headers on websocket requests, so the token rides
// in a query parameter.
func SyncWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		tokenString := c.Query("token")
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token required",
			})
		}

		cfg := config.GetConfig()
		token, err := jwt.ParseWithClaims(tokenString, &middleware.Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		claims, ok := token.Claims.(*middleware.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		c.Locals("householdID", claims.HouseholdID)

		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SyncWebSocket holds a dashboard connection open and pushes change
// notices until the client goes away. Incoming messages are drained and
// ignored; the channel only flows server to client.
func SyncWebSocket(c *websocket.Conn) {
	householdID, _ := c.Locals("householdID").(string)
	if householdID == "" {
		c.Close()
		return
	}

	services.RegisterSync(householdID, c)
	defer func() {
		services.UnregisterSync(householdID, c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
