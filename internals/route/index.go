// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	examinationRoutes "edutrack_backend/internals/features/school/examination/route"
	"edutrack_backend/internals/middlewares"
	authMiddleware "edutrack_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up base routes...")
	BaseRoutes(app, db)

	// Everything under /api requires a valid token; write endpoints get the
	// stricter limiter on top.
	log.Println("[INFO] Setting up /api group...")
	api := app.Group("/api",
		authMiddleware.AuthMiddleware(db),
	)

	writeLimiter := middlewares.WriteRateLimiter()
	api.Use(func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete:
			return writeLimiter(c)
		}
		return c.Next()
	})

	log.Println("[INFO] Mounting examination routes...")
	examinationRoutes.ExaminationRoutes(api, db)
}
