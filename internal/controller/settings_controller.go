package controller

import (
	"github.com/gofiber/fiber/v2"

	"majesty_backend/internal/model"
	"majesty_backend/pkg/database"
)

// GetContactInfo is the public view of the site settings: just the
// details the site renders in its contact section.
func GetContactInfo(c *fiber.Ctx) error {
	settings, err := model.GetSiteSettings(database.GetDB())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Site settings not configured",
		})
	}

	return c.JSON(fiber.Map{
		"contact_phone": settings.ContactPhone,
		"contact_email": settings.ContactEmail,
		"whatsapp":      settings.ReceiverWhatsApp,
		"address":       settings.Address,
	})
}

type SettingsInput struct {
	ReceiverEmail    string `json:"receiver_email"`
	ReceiverWhatsApp string `json:"receiver_whatsapp"`
	ContactPhone     string `json:"contact_phone"`
	ContactEmail     string `json:"contact_email"`
	Address          string `json:"address"`
}

// UpdateSettings replaces the singleton settings row's fields.
func UpdateSettings(c *fiber.Ctx) error {
	input := new(SettingsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	settings, err := model.GetSiteSettings(database.GetDB())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Site settings not configured",
		})
	}

	updates := map[string]interface{}{
		"receiver_email":     input.ReceiverEmail,
		"receiver_whats_app": input.ReceiverWhatsApp,
		"contact_phone":      input.ContactPhone,
		"contact_email":      input.ContactEmail,
		"address":            input.Address,
	}

	if err := database.GetDB().Model(settings).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update settings",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Settings updated successfully",
		"settings": settings,
	})
}
