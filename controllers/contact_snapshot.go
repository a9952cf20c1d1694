package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zapcontacts/models"
	"zapcontacts/utils"
)

// Snapshot is a consistent projection of a user's contacts, tags, and their
// associations as of a single read.
type Snapshot struct {
	Contacts    []models.Contact      `json:"contacts"`
	Tags        []models.Tag          `json:"tags"`
	ContactTags map[uint][]models.Tag `json:"contact_tags"`
}

// GetSnapshot returns the full contact/tag projection for the current user.
// All three collections are read inside one transaction so the result is
// never torn across a concurrent mutation.
func (cc *ContactController) GetSnapshot(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var snapshot Snapshot
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Find(&snapshot.Tags).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).
			Order("updated_at DESC").
			Find(&snapshot.Contacts).Error; err != nil {
			return err
		}

		var joins []models.ContactTag
		if err := tx.
			Joins("JOIN contacts ON contacts.id = contact_tags.contact_id").
			Where("contacts.user_id = ?", user.ID).
			Find(&joins).Error; err != nil {
			return err
		}

		snapshot.ContactTags = BuildTagMap(snapshot.Contacts, snapshot.Tags, joins)
		return nil
	})
	if err != nil {
		cc.Logger.Printf("snapshot load failed for user %d: %v", user.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load data", err)
	}

	return c.JSON(utils.SuccessResponse(snapshot))
}

// BuildTagMap assembles the contact-to-tags association map from join rows.
// Join rows pointing at tags that are no longer loaded (deleted tags) are
// dropped, so the map only ever references tags present in the snapshot.
func BuildTagMap(contacts []models.Contact, tags []models.Tag, joins []models.ContactTag) map[uint][]models.Tag {
	tagByID := make(map[uint]models.Tag, len(tags))
	for _, tag := range tags {
		tagByID[tag.ID] = tag
	}

	tagMap := make(map[uint][]models.Tag, len(contacts))
	for _, contact := range contacts {
		contactTags := []models.Tag{}
		for _, join := range joins {
			if join.ContactID != contact.ID {
				continue
			}
			if tag, ok := tagByID[join.TagID]; ok {
				contactTags = append(contactTags, tag)
			}
		}
		tagMap[contact.ID] = contactTags
	}

	return tagMap
}
