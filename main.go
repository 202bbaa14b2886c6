package main

import (
	"log"

	"lms/config"
	adminController "lms/controllers/admin"
	authController "lms/controllers/auth"
	courseController "lms/controllers/course"
	notificationController "lms/controllers/notification"
	paymentController "lms/controllers/payment"
	"lms/database"
	"lms/realtime"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	notificationRoutes "lms/routers/notificationRoutes"
	paymentRoutes "lms/routers/paymentRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()

	db, err := database.Connect(config.AppConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hub := realtime.NewHub()
	notifier := utils.NewNotifier(db, hub)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app, authController.New(db, notifier))

	courseCtrl := courseController.New(db, notifier)
	courseRoutes.SetupCourseRoutes(app, courseCtrl)
	courseRoutes.SetupCourseAdminRoutes(app, courseCtrl)

	paymentRoutes.SetupPaymentRoutes(app, paymentController.New(db, notifier))
	notificationRoutes.SetupNotificationRoutes(app, notificationController.New(db, notifier))
	adminRoutes.SetupAdminRoutes(app, adminController.New(db, notifier))

	// Realtime push channel
	app.Use("/ws", hub.Upgrade)
	app.Get("/ws", hub.Handler())

	// Expire stale payment intents in the background
	sweeper := utils.StartPaymentSweep(db)
	defer sweeper.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
