package email

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/features/record"
	"tablecrm/internal/middleware"
)

type EmailController struct {
	Service EmailService
}

func NewEmailController(service EmailService) *EmailController {
	return &EmailController{Service: service}
}

type SendRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

type MassSendRequest struct {
	Table   string `json:"table"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendEmail godoc
// @Summary  Send an email to explicit recipients
// @Tags     email
// @Accept   json
// @Produce  json
// @Param    input  body  SendRequest  true  "Message"
// @Success  200  {object}  map[string]bool
// @Router   /api/email/send [post]
func (ctrl *EmailController) SendEmail(c *fiber.Ctx) error {
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.Send(c.UserContext(), middleware.UserID(c), req.To, req.Subject, req.Body); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to send email",
			"details": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// MassSendEmail godoc
// @Summary  Email every record in a table that has an address
// @Tags     email
// @Accept   json
// @Produce  json
// @Param    input  body  MassSendRequest  true  "Message and target table"
// @Success  200  {object}  MassResult
// @Router   /api/email/mass [post]
func (ctrl *EmailController) MassSendEmail(c *fiber.Ctx) error {
	var req MassSendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Table == "" {
		req.Table = "leads"
	}

	result, err := ctrl.Service.MassSend(c.UserContext(), middleware.UserID(c), req.Table, req.Subject, req.Body)
	if err != nil {
		if errors.Is(err, record.ErrInvalidTable) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid table",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Mass send failed",
			"details": err.Error(),
		})
	}
	return c.JSON(result)
}

// EmailHistory godoc
// @Summary  The caller's recent email sends
// @Tags     email
// @Produce  json
// @Success  200  {array}  Message
// @Router   /api/email/history [get]
func (ctrl *EmailController) EmailHistory(c *fiber.Ctx) error {
	messages, err := ctrl.Service.History(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to load history",
			"details": err.Error(),
		})
	}
	if messages == nil {
		messages = []Message{}
	}
	return c.JSON(messages)
}
