package handlers

import (
	"errors"
	"time"
	"uandme/config"
	"uandme/database"
	"uandme/middleware"
	"uandme/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

type AuthResponse struct {
	Token     string                   `json:"token"`
	Household models.HouseholdResponse `json:"household"`
}

// Register creates a household account for two partners
func Register(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.CoupleName == "" || input.Email == "" || input.Partner1Name == "" || input.Partner2Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Couple name, email and both partner names are required",
		})
	}
	if len(input.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password must be at least 6 characters",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	household := models.Household{
		ID:           uuid.NewString(),
		CoupleName:   input.CoupleName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Partner1Name: input.Partner1Name,
		Partner2Name: input.Partner2Name,
		CreatedAt:    time.Now().Format(dateLayout),
	}

	if err := database.CreateHousehold(&household); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	token, err := generateToken(&household)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Token:     token,
		Household: household.ToResponse(),
	})
}

// Login authenticates a household and returns a JWT token
func Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	household, err := database.HouseholdByEmail(input.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log in",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(household.PasswordHash), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := generateToken(household)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(AuthResponse{
		Token:     token,
		Household: household.ToResponse(),
	})
}

// GetHousehold returns the authenticated household account
func GetHousehold(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	household, err := database.HouseholdByID(householdID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Household not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch household",
		})
	}

	return c.JSON(household.ToResponse())
}

func generateToken(household *models.Household) (string, error) {
	cfg := config.GetConfig()

	claims := middleware.Claims{
		HouseholdID:  household.ID,
		CoupleName:   household.CoupleName,
		Partner1Name: household.Partner1Name,
		Partner2Name: household.Partner2Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.SessionDurationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
