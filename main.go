package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"uandme/config"
	"uandme/database"
	"uandme/handlers"
	"uandme/middleware"
)

func main() {
	// Load configuration
	cfg := config.GetConfig()

	// Connect to database and apply migrations
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app := newApp()

	// Serve static files (frontend) in production
	if cfg.Production {
		app.Static("/", "./static")
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile("./static/index.html")
		})
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting uandme on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newApp builds the fiber app with every route wired. Kept separate
// from main so handler tests can drive the app without a listener.
func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "uandme",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173,http://localhost:3000,http://localhost:8080",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// WebSocket route for dashboard sync (must be before other routes to
	// avoid middleware conflicts)
	app.Use("/api/sync/ws", handlers.SyncWebSocketUpgrade)
	app.Get("/api/sync/ws", websocket.New(handlers.SyncWebSocket))

	// API routes
	api := app.Group("/api")

	// Rate limiter for auth endpoints (5 requests per minute per IP)
	authLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many attempts. Please try again later.",
			})
		},
	})

	// Public routes (with rate limiting on auth)
	api.Post("/register", authLimiter, handlers.Register)
	api.Post("/login", authLimiter, handlers.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired())
	protected.Get("/household", handlers.GetHousehold)

	// Settings routes
	protected.Get("/settings", handlers.GetSettings)
	protected.Put("/settings", handlers.UpdateSettings)

	// Money routes
	money := protected.Group("/money")
	money.Get("/summary", handlers.MoneySummary)
	money.Post("/:kind", handlers.RecordTransaction)
	money.Get("/:kind", handlers.ListTransactions)

	// Todo routes
	todos := protected.Group("/todos")
	todos.Get("/", handlers.ListTodos)
	todos.Post("/", handlers.CreateTodoList)
	todos.Put("/:id", handlers.UpdateTodo)

	// Calendar event routes
	events := protected.Group("/events")
	events.Get("/", handlers.ListEvents)
	events.Post("/", handlers.CreateEvent)
	events.Get("/:id/comments", handlers.ListComments)
	events.Post("/:id/comments", handlers.CreateComment)

	// Calendar view routes
	cal := protected.Group("/calendar")
	cal.Get("/month", handlers.MonthView)
	cal.Get("/templates", handlers.ListTemplates)
	cal.Get("/export.ics", handlers.ExportICS)

	// Savings goal routes
	goals := protected.Group("/goals")
	goals.Get("/", handlers.ListGoals)
	goals.Post("/", handlers.CreateGoal)

	// Analytics routes
	analytics := protected.Group("/analytics")
	analytics.Get("/trends", handlers.MonthlyTrends)
	analytics.Get("/categories", handlers.ExpenseCategories)
	analytics.Get("/partners", handlers.PartnerComparison)
	analytics.Get("/goals", handlers.GoalProgress)
	analytics.Get("/time", handlers.TimeAnalytics)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
