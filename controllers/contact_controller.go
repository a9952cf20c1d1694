package controller

import (
	"log"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zapcontacts/models"
	"zapcontacts/utils"
)

type ContactController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewContactController(db *gorm.DB, logger *log.Logger) *ContactController {
	return &ContactController{
		DB:     db,
		Logger: logger,
	}
}

// CreateContact creates a new contact. Free-tier users are capped at
// their plan's contact ceiling; hitting it returns a paywall payload.
func (cc *ContactController) CreateContact(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name            string     `json:"name" validate:"required,max=200"`
		Phone           string     `json:"phone" validate:"required,max=50"`
		Email           string     `json:"email" validate:"omitempty,email"`
		AvatarURL       string     `json:"avatar_url"`
		PipelineStage   string     `json:"pipeline_stage"`
		LastContactDate *time.Time `json:"last_contact_date"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	// Validate input
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if input.Email != "" {
		if err := checkmail.ValidateFormat(input.Email); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid email address", err)
		}
	}

	if input.PipelineStage == "" {
		input.PipelineStage = models.StageLead
	}
	if !models.IsValidStage(input.PipelineStage) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pipeline stage", nil)
	}

	// Enforce the plan's contact ceiling
	var count int64
	if err := cc.DB.Model(&models.Contact{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count contacts", err)
	}
	if !models.CanAddContact(user.PlanName, count) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"success":      false,
			"error":        "Contact limit reached",
			"limit":        models.MaxContactsFor(user.PlanName),
			"upgrade_plan": "premium",
		})
	}

	contact := models.Contact{
		UserID:          user.ID,
		Name:            input.Name,
		Phone:           input.Phone,
		Email:           strings.ToLower(input.Email),
		AvatarURL:       input.AvatarURL,
		PipelineStage:   input.PipelineStage,
		LastContactDate: input.LastContactDate,
		Source:          "manual",
	}

	if err := cc.DB.Create(&contact).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create contact", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(contact))
}

// GetContacts returns the user's contacts ordered by last update, optionally
// filtered by a free-text query over name, phone, and email.
func (cc *ContactController) GetContacts(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	query := c.Query("q")

	var contacts []models.Contact
	if err := cc.DB.Where("user_id = ?", user.ID).
		Order("updated_at DESC").
		Find(&contacts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}

	if query != "" {
		contacts = FilterContacts(contacts, query)
	}

	return c.JSON(utils.SuccessResponse(contacts))
}

// FilterContacts keeps contacts whose name, phone, or email contains the
// query, case-insensitively. Tag names are deliberately not matched.
func FilterContacts(contacts []models.Contact, query string) []models.Contact {
	q := strings.ToLower(query)
	filtered := make([]models.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if strings.Contains(strings.ToLower(contact.Name), q) ||
			strings.Contains(strings.ToLower(contact.Phone), q) ||
			strings.Contains(strings.ToLower(contact.Email), q) {
			filtered = append(filtered, contact)
		}
	}
	return filtered
}

// GetContact returns a single contact by ID
func (cc *ContactController) GetContact(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	var contact models.Contact
	if err := cc.DB.Where("id = ? AND user_id = ?", contactID, user.ID).
		Preload("Interaction").
		First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err)
	}

	return c.JSON(utils.SuccessResponse(contact))
}

// UpdateContact updates contact details
func (cc *ContactController) UpdateContact(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	var input struct {
		Name            string     `json:"name" validate:"omitempty,max=200"`
		Phone           string     `json:"phone" validate:"omitempty,max=50"`
		Email           *string    `json:"email" validate:"omitempty"`
		AvatarURL       *string    `json:"avatar_url"`
		LastContactDate *time.Time `json:"last_contact_date"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var contact models.Contact
	if err := cc.DB.Where("id = ? AND user_id = ?", contactID, user.ID).First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err)
	}

	// Update fields
	if input.Name != "" {
		contact.Name = input.Name
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}
	if input.Email != nil {
		if *input.Email != "" {
			if err := checkmail.ValidateFormat(*input.Email); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid email address", err)
			}
		}
		contact.Email = strings.ToLower(*input.Email)
	}
	if input.AvatarURL != nil {
		contact.AvatarURL = *input.AvatarURL
	}
	if input.LastContactDate != nil {
		contact.LastContactDate = input.LastContactDate
	}

	if err := cc.DB.Save(&contact).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update contact", err)
	}

	return c.JSON(utils.SuccessResponse(contact))
}

// DeleteContact deletes a contact along with its tag associations and
// interaction record.
func (cc *ContactController) DeleteContact(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	tx := cc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Delete tag associations
	if err := tx.Where("contact_id = ?", contactID).Delete(&models.ContactTag{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete contact tags", err)
	}

	// Delete interaction record
	if err := tx.Where("contact_id = ?", contactID).Delete(&models.Interaction{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete contact interaction", err)
	}

	// Delete contact
	result := tx.Where("id = ? AND user_id = ?", contactID, user.ID).Delete(&models.Contact{})
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete contact", result.Error)
	}

	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to complete deletion", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Contact deleted successfully",
	}))
}
