package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the interview API on router, normally the /api/v1 group.
func Register(router fiber.Router, interview *InterviewHandler, admin *AdminHandler) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	router.Post("/start", interview.HandleStart)
	router.Post("/hint", interview.HandleHint)
	router.Post("/answer", interview.HandleAnswer)
	router.Get("/report/:id", interview.HandleReport)
	router.Get("/admin/metrics", admin.HandleMetrics)
}

// Endpoints lists the routes served by Register, for the index page.
var Endpoints = []string{
	"GET /api/v1/health",
	"POST /api/v1/start",
	"POST /api/v1/hint",
	"POST /api/v1/answer",
	"GET /api/v1/report/:id",
	"GET /api/v1/admin/metrics",
}
