package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"excelinterviewer/mock-interviewer/internal/services"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names, e.g. interview_id instead of InterviewID
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validationMessage returns the first failed rule as a readable message.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "uuid":
			return fmt.Sprintf("Invalid %s format", fe.Field())
		case "email":
			return fmt.Sprintf("%s must be a valid email", fe.Field())
		default:
			return fmt.Sprintf("validation error: %s - %s", fe.Field(), fe.Tag())
		}
	}
	return "validation error: invalid request"
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, services.ErrQuestionNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
