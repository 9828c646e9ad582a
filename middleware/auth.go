package middleware

import (
	"strings"
	"uandme/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the full household identity, so request handling never
// has to look the session up from shared state.
type Claims struct {
	HouseholdID  string `json:"household_id"`
	CoupleName   string `json:"couple_name"`
	Partner1Name string `json:"partner1_name"`
	Partner2Name string `json:"partner2_name"`
	jwt.RegisteredClaims
}

// parseClaims extracts and validates JWT claims from the Authorization header
func parseClaims(c *fiber.Ctx) (*Claims, error) {
	cfg := config.GetConfig()

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
	}

	token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	return claims, nil
}

// AuthRequired validates the bearer token and stores the household
// identity on the request context.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseClaims(c)
		if err != nil {
			e := err.(*fiber.Error)
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}

		c.Locals("householdID", claims.HouseholdID)
		c.Locals("coupleName", claims.CoupleName)
		c.Locals("partner1Name", claims.Partner1Name)
		c.Locals("partner2Name", claims.Partner2Name)

		return c.Next()
	}
}

func GetHouseholdID(c *fiber.Ctx) string {
	if id, ok := c.Locals("householdID").(string); ok {
		return id
	}
	return ""
}

func GetCoupleName(c *fiber.Ctx) string {
	if name, ok := c.Locals("coupleName").(string); ok {
		return name
	}
	return ""
}

func GetPartner1Name(c *fiber.Ctx) string {
	if name, ok := c.Locals("partner1Name").(string); ok {
		return name
	}
	return ""
}

func GetPartner2Name(c *fiber.Ctx) string {
	if name, ok := c.Locals("partner2Name").(string); ok {
		return name
	}
	return ""
}

// ResolvePartner maps a partner label from a request to the display name
// carried in the token. Any other label is returned as given.
func ResolvePartner(c *fiber.Ctx, label string) string {
	switch label {
	case "partner1":
		return GetPartner1Name(c)
	case "partner2":
		return GetPartner2Name(c)
	}
	return label
}
