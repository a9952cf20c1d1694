package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zapcontacts/models"
	"zapcontacts/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

// GetDashboardStats returns the headline numbers for the dashboard:
// contact and tag counts, remaining free-tier quota, per-stage totals,
// and how many contacts are overdue for a follow-up.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var contactCount int64
	if err := dc.DB.Model(&models.Contact{}).Where("user_id = ?", user.ID).Count(&contactCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count contacts", err)
	}

	var tagCount int64
	if err := dc.DB.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&tagCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count tags", err)
	}

	// Per-stage totals
	type stageCount struct {
		PipelineStage string
		Count         int64
	}
	var stageCounts []stageCount
	if err := dc.DB.Model(&models.Contact{}).
		Select("pipeline_stage, COUNT(*) as count").
		Where("user_id = ?", user.ID).
		Group("pipeline_stage").
		Scan(&stageCounts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count stages", err)
	}

	byStage := make(map[string]int64, len(models.PipelineStages))
	for _, stage := range models.PipelineStages {
		byStage[stage] = 0
	}
	for _, sc := range stageCounts {
		stage := sc.PipelineStage
		if !models.IsValidStage(stage) {
			stage = models.StageLead
		}
		byStage[stage] += sc.Count
	}

	// Contacts overdue for a follow-up, using the user's reminder interval
	intervalDays := 7
	var pref models.NotificationPreference
	if err := dc.DB.Where("user_id = ?", user.ID).First(&pref).Error; err == nil {
		intervalDays = pref.FollowUpIntervalDays
	}

	var contacts []models.Contact
	if err := dc.DB.Where("user_id = ?", user.ID).Find(&contacts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}
	needingFollowUp := len(utils.ContactsNeedingFollowUp(contacts, intervalDays, time.Now()))

	limit := models.MaxContactsFor(user.PlanName)
	remaining := int64(-1) // unlimited
	if limit > 0 {
		remaining = int64(limit) - contactCount
		if remaining < 0 {
			remaining = 0
		}
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"contact_count":      contactCount,
		"tag_count":          tagCount,
		"contact_limit":      limit,
		"contacts_remaining": remaining,
		"plan":               user.PlanName,
		"by_stage":           byStage,
		"needing_follow_up":  needingFollowUp,
	}))
}
