package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zapcontacts/models"
	"zapcontacts/utils"
)

type TagController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTagController(db *gorm.DB, logger *log.Logger) *TagController {
	return &TagController{
		DB:     db,
		Logger: logger,
	}
}

// CreateTag creates a new tag; the color must come from the fixed palette.
func (tc *TagController) CreateTag(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name  string `json:"name" validate:"required,max=50"`
		Color string `json:"color" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tag name cannot be empty", nil)
	}

	if !models.IsValidTagColor(input.Color) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Color must be one of the palette colors", nil)
	}

	tag := models.Tag{
		UserID: user.ID,
		Name:   input.Name,
		Color:  input.Color,
	}

	if err := tc.DB.Create(&tag).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create tag", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(tag))
}

// GetTags returns the user's tags, newest first.
func (tc *TagController) GetTags(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var tags []models.Tag
	if err := tc.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&tags).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tags", err)
	}

	return c.JSON(utils.SuccessResponse(tags))
}

// DeleteTag removes a tag. Association rows are left behind on purpose;
// the snapshot assembly filters them out once the tag is gone.
func (tc *TagController) DeleteTag(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	tagID := c.Params("id")

	result := tc.DB.Where("id = ? AND user_id = ?", tagID, user.ID).Delete(&models.Tag{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete tag", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Tag not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Tag deleted successfully",
	}))
}

// AssignTags replaces a contact's entire tag set with the given tag IDs.
// Delete-then-insert runs inside one transaction, so a failure can never
// strand the contact with zero tags.
func (tc *TagController) AssignTags(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	var input struct {
		TagIDs []uint `json:"tag_ids"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	// Verify the contact belongs to the user
	var contact models.Contact
	if err := tc.DB.Where("id = ? AND user_id = ?", contactID, user.ID).First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err)
	}

	// Verify every tag belongs to the user
	if len(input.TagIDs) > 0 {
		var tagCount int64
		if err := tc.DB.Model(&models.Tag{}).
			Where("id IN ? AND user_id = ?", input.TagIDs, user.ID).
			Count(&tagCount).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to verify tags", err)
		}
		if tagCount != int64(len(input.TagIDs)) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "One or more tags not found", nil)
		}
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", contact.ID).Delete(&models.ContactTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range input.TagIDs {
			join := models.ContactTag{ContactID: contact.ID, TagID: tagID}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}
		// Bump updated_at so the contact surfaces at the top of the list
		return tx.Model(&contact).Update("updated_at", tx.NowFunc()).Error
	})
	if err != nil {
		tc.Logger.Printf("tag assignment failed for contact %d: %v", contact.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update tags", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"contact_id": contact.ID,
		"tag_ids":    input.TagIDs,
	}))
}
