package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"excelinterviewer/mock-interviewer/internal/models"
	"excelinterviewer/mock-interviewer/internal/services"
)

type InterviewHandler struct {
	service   services.InterviewService
	validator *validator.Validate
}

func NewInterviewHandler(service services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		service:   service,
		validator: newValidator(),
	}
}

// HandleStart handles POST /start
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request payload",
			})
		}
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	resp, err := h.service.Start(c.UserContext(), req.CandidateEmail)
	if err != nil {
		log.Printf("❌ Failed to start interview: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start interview",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleHint handles POST /hint
func (h *InterviewHandler) HandleHint(c *fiber.Ctx) error {
	var req models.HintRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	return h.hint(c, req.InterviewID, req.QuestionID)
}

// HandleAnswer handles POST /answer. With want_hint set it serves a hint
// instead of grading.
func (h *InterviewHandler) HandleAnswer(c *fiber.Ctx) error {
	var req models.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	if req.WantHint {
		return h.hint(c, req.InterviewID, req.QuestionID)
	}

	resp, err := h.service.SubmitAnswer(c.UserContext(), &req)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			log.Printf("❌ Failed to grade answer: %v\n", err)
			return c.Status(status).JSON(fiber.Map{
				"error": "Failed to grade answer",
			})
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}

// HandleReport handles GET /report/:id
func (h *InterviewHandler) HandleReport(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	report, err := h.service.Report(c.UserContext(), id)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

func (h *InterviewHandler) hint(c *fiber.Ctx, interviewID, questionID string) error {
	resp, err := h.service.Hint(c.UserContext(), interviewID, questionID)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(resp)
}
