package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"excelinterviewer/mock-interviewer/internal/services"
)

type AdminHandler struct {
	service services.InterviewService
}

func NewAdminHandler(service services.InterviewService) *AdminHandler {
	return &AdminHandler{service: service}
}

// HandleMetrics handles GET /admin/metrics
func (h *AdminHandler) HandleMetrics(c *fiber.Ctx) error {
	metrics, err := h.service.Metrics(c.UserContext())
	if err != nil {
		log.Printf("❌ Failed to load metrics: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load metrics",
		})
	}
	return c.JSON(metrics)
}
