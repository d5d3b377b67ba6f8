package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"majesty_backend/internal/model"
	"majesty_backend/pkg/database"
	"majesty_backend/pkg/utils/storage"
	"majesty_backend/pkg/utils/validation"
)

// ListBrochures returns the downloadable brochures in display order.
func ListBrochures(c *fiber.Ctx) error {
	var brochures []model.Brochure
	if err := database.GetDB().Order("display_order asc").Find(&brochures).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch brochures",
		})
	}

	return c.JSON(brochures)
}

// CreateBrochure uploads a brochure PDF and registers it.
func CreateBrochure(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No brochure file provided",
		})
	}

	if err := validation.ValidateDocument(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not read brochure file",
		})
	}
	defer src.Close()

	key := storage.ObjectKey(title, file.Filename)
	if err := storage.UploadFile(c.UserContext(), storage.BrochureBucket, key, "application/pdf", src); err != nil {
		log.Printf("Could not upload brochure: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload brochure",
		})
	}

	displayOrder, _ := strconv.Atoi(c.FormValue("display_order", "0"))

	brochure := model.Brochure{
		Title:        title,
		Description:  c.FormValue("description"),
		FilePath:     key,
		FileSize:     file.Size,
		IsFeatured:   c.FormValue("is_featured") == "true",
		DisplayOrder: displayOrder,
	}

	if err := database.GetDB().Create(&brochure).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create brochure",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(brochure)
}

func UpdateBrochure(c *fiber.Ctx) error {
	var brochure model.Brochure
	if err := database.GetDB().First(&brochure, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Brochure not found",
		})
	}

	input := struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		IsFeatured   *bool   `json:"is_featured"`
		DisplayOrder *int    `json:"display_order"`
	}{}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsFeatured != nil {
		updates["is_featured"] = *input.IsFeatured
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}

	if len(updates) > 0 {
		if err := database.GetDB().Model(&brochure).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update brochure",
			})
		}
	}

	return c.JSON(brochure)
}

func DeleteBrochure(c *fiber.Ctx) error {
	var brochure model.Brochure
	if err := database.GetDB().First(&brochure, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Brochure not found",
		})
	}

	if err := storage.DeleteFile(c.UserContext(), storage.BrochureBucket, brochure.FilePath); err != nil {
		log.Printf("Could not delete brochure file %s: %v", brochure.FilePath, err)
	}

	if err := database.GetDB().Delete(&brochure).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete brochure",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
