package reminder

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
)

type ReminderApi struct {
	service ReminderService
	config  *config.Config
}

func NewReminderApi(service ReminderService, config *config.Config) *ReminderApi {
	return &ReminderApi{
		service: service,
		config:  config,
	}
}

// Setup registers the manual reminder trigger
func (h *ReminderApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/reminders/run", auth, h.runNow)
}

// runNow godoc
// @Summary  Run the due-task reminder sweep immediately
// @Tags     reminders
// @Produce  json
// @Success  200  {object}  map[string]int
// @Router   /api/reminders/run [post]
func (h *ReminderApi) runNow(c *fiber.Ctx) error {
	sent, err := h.service.Run(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Reminder run failed",
			"details": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"sent": sent})
}
