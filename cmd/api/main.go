package main

import (
	"log"
	"time"

	config "school_fees_backend/configs"
	"school_fees_backend/database"
	"school_fees_backend/handlers"
	"school_fees_backend/jobs"
	"school_fees_backend/notifications"
	"school_fees_backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()
	handlers.InitServices()

	c := cron.New()
	c.AddFunc("0 9 * * *", jobs.SendFeeReminders)
	go c.Start()
	log.Println("✅ Cron job for fee reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "School Fees",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to School Fees API",
		})
	})

	routes.AuthRoutes(app)
	routes.AdminRoutes(app)
	routes.StudentRoutes(app)
	routes.LedgerRoutes(app)
	routes.PaymentRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	err := app.Listen(":" + port)
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
