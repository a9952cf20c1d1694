package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zapcontacts/models"
	"zapcontacts/utils"
)

type InteractionController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewInteractionController(db *gorm.DB, logger *log.Logger) *InteractionController {
	return &InteractionController{
		DB:     db,
		Logger: logger,
	}
}

// GetInteraction returns the notes record for a contact, if any.
func (ic *InteractionController) GetInteraction(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	var contact models.Contact
	if err := ic.DB.Where("id = ? AND user_id = ?", contactID, user.ID).First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err)
	}

	var interaction models.Interaction
	if err := ic.DB.Where("contact_id = ?", contact.ID).First(&interaction).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// No notes saved yet; return an empty record rather than 404
			return c.JSON(utils.SuccessResponse(models.Interaction{ContactID: contact.ID}))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch interaction", err)
	}

	return c.JSON(utils.SuccessResponse(interaction))
}

// SaveInteraction upserts the single notes record for a contact. The write
// is a conditional insert keyed on contact_id, so two concurrent saves can
// never produce duplicate rows.
func (ic *InteractionController) SaveInteraction(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	var input struct {
		LastMessage     string     `json:"last_message" validate:"omitempty,max=2000"`
		Notes           string     `json:"notes" validate:"omitempty,max=10000"`
		LastContactDate *time.Time `json:"last_contact_date"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var contact models.Contact
	if err := ic.DB.Where("id = ? AND user_id = ?", contactID, user.ID).First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err)
	}

	interaction := models.Interaction{
		ContactID:       contact.ID,
		LastMessage:     input.LastMessage,
		Notes:           input.Notes,
		LastContactDate: input.LastContactDate,
	}

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contact_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_message", "notes", "last_contact_date", "updated_at"}),
		}).Create(&interaction).Error; err != nil {
			return err
		}

		// Keep the contact's own last-contact field in sync with the notes
		if input.LastContactDate != nil {
			return tx.Model(&contact).Update("last_contact_date", input.LastContactDate).Error
		}
		return nil
	})
	if err != nil {
		ic.Logger.Printf("interaction save failed for contact %d: %v", contact.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save interaction", err)
	}

	return c.JSON(utils.SuccessResponse(interaction))
}
