package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zapcontacts/models"
	"zapcontacts/utils"
)

// GetWhatsAppLink returns the deep link pair for opening a WhatsApp chat
// with a contact. An optional "text" query parameter pre-fills the message.
func (cc *ContactController) GetWhatsAppLink(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	var contact models.Contact
	if err := cc.DB.Where("id = ? AND user_id = ?", contactID, user.ID).First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err)
	}

	if utils.DialDigits(contact.Phone) == "" {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Contact has no dialable phone number", nil)
	}

	link := utils.BuildWhatsAppLink(contact.Phone, c.Query("text"))

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"contact_id":        contact.ID,
		"display_phone":     utils.FormatPhoneNumber(contact.Phone),
		"web_url":           link.WebURL,
		"native_uri":        link.NativeURI,
		"fallback_delay_ms": 2000,
	}))
}

// ExportVCard renders a contact as a downloadable vCard for sharing.
func (cc *ContactController) ExportVCard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	var contact models.Contact
	if err := cc.DB.Where("id = ? AND user_id = ?", contactID, user.ID).First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err)
	}

	c.Set("Content-Type", "text/vcard; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="contact.vcf"`)
	return c.SendString(utils.BuildVCard(contact))
}
