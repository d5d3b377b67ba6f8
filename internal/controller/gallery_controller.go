package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"majesty_backend/internal/model"
	"majesty_backend/pkg/database"
	"majesty_backend/pkg/utils/image"
	"majesty_backend/pkg/utils/storage"
	"majesty_backend/pkg/utils/validation"
)

func ListGalleryImages(c *fiber.Ctx) error {
	var images []model.GalleryImage
	if err := database.GetDB().Order("display_order asc").Find(&images).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch gallery images",
		})
	}

	return c.JSON(images)
}

// UploadGalleryImage processes and stores a project gallery image.
func UploadGalleryImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image provided",
		})
	}

	if err := validation.ValidateImage(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	title := c.FormValue("title", "gallery")
	key := storage.ObjectKey(title, file.Filename)

	if err := storage.UploadFile(c.UserContext(), storage.GalleryBucket, key, contentType, buf); err != nil {
		log.Printf("Could not upload gallery image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	displayOrder, _ := strconv.Atoi(c.FormValue("display_order", "0"))

	galleryImage := model.GalleryImage{
		Title:        c.FormValue("title"),
		URL:          storage.PublicURL(storage.GalleryBucket, key),
		ObjectKey:    key,
		DisplayOrder: displayOrder,
	}

	if err := database.GetDB().Create(&galleryImage).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save gallery image",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(galleryImage)
}

func DeleteGalleryImage(c *fiber.Ctx) error {
	var galleryImage model.GalleryImage
	if err := database.GetDB().First(&galleryImage, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Gallery image not found",
		})
	}

	if err := storage.DeleteFile(c.UserContext(), storage.GalleryBucket, galleryImage.ObjectKey); err != nil {
		log.Printf("Could not delete gallery file %s: %v", galleryImage.ObjectKey, err)
	}

	if err := database.GetDB().Delete(&galleryImage).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete gallery image",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
