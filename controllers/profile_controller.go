package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zapcontacts/models"
	"zapcontacts/utils"
)

type ProfileController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewProfileController(db *gorm.DB, logger *log.Logger) *ProfileController {
	return &ProfileController{
		DB:     db,
		Logger: logger,
	}
}

// UpdateProfile updates the ad hoc profile fields.
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name      *string `json:"name" validate:"omitempty,max=100"`
		Company   *string `json:"company" validate:"omitempty,max=200"`
		Bio       *string `json:"bio" validate:"omitempty,max=500"`
		AvatarURL *string `json:"avatar_url"`
		Timezone  *string `json:"timezone"`
		Language  *string `json:"language"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if input.Name != nil {
		user.Name = input.Name
	}
	if input.Company != nil {
		user.Company = input.Company
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	if input.Timezone != nil {
		user.Timezone = *input.Timezone
	}
	if input.Language != nil {
		user.Language = *input.Language
	}

	if err := pc.DB.Save(user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update profile", err)
	}

	return c.JSON(utils.SuccessResponse(user))
}

// GetNotificationPreferences returns the user's follow-up reminder settings,
// defaults included when nothing has been saved yet.
func (pc *ProfileController) GetNotificationPreferences(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var pref models.NotificationPreference
	if err := pc.DB.Where("user_id = ?", user.ID).First(&pref).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			pref = models.NotificationPreference{UserID: user.ID, Enabled: false, FollowUpIntervalDays: 7}
			return c.JSON(utils.SuccessResponse(pref))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch preferences", err)
	}

	return c.JSON(utils.SuccessResponse(pref))
}

// UpdateNotificationPreferences upserts the follow-up reminder settings.
func (pc *ProfileController) UpdateNotificationPreferences(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Enabled              *bool `json:"enabled"`
		FollowUpIntervalDays *int  `json:"follow_up_interval_days" validate:"omitempty,min=1,max=365"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	pref := models.NotificationPreference{UserID: user.ID, Enabled: false, FollowUpIntervalDays: 7}
	if err := pc.DB.Where("user_id = ?", user.ID).First(&pref).Error; err != nil && err != gorm.ErrRecordNotFound {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch preferences", err)
	}

	if input.Enabled != nil {
		pref.Enabled = *input.Enabled
	}
	if input.FollowUpIntervalDays != nil {
		pref.FollowUpIntervalDays = *input.FollowUpIntervalDays
	}

	if err := pc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "follow_up_interval_days", "updated_at"}),
	}).Create(&pref).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save preferences", err)
	}

	return c.JSON(utils.SuccessResponse(pref))
}

// GetTodos lists the user's personal to-do items.
func (pc *ProfileController) GetTodos(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var todos []models.TodoItem
	if err := pc.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&todos).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch todos", err)
	}

	return c.JSON(utils.SuccessResponse(todos))
}

// CreateTodo adds a personal to-do item.
func (pc *ProfileController) CreateTodo(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Text string `json:"text" validate:"required,max=500"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	todo := models.TodoItem{UserID: user.ID, Text: input.Text}
	if err := pc.DB.Create(&todo).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create todo", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(todo))
}

// UpdateTodo toggles or edits a to-do item.
func (pc *ProfileController) UpdateTodo(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	todoID := c.Params("id")

	var input struct {
		Text *string `json:"text" validate:"omitempty,max=500"`
		Done *bool   `json:"done"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var todo models.TodoItem
	if err := pc.DB.Where("id = ? AND user_id = ?", todoID, user.ID).First(&todo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Todo not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch todo", err)
	}

	if input.Text != nil {
		todo.Text = *input.Text
	}
	if input.Done != nil {
		todo.Done = *input.Done
	}

	if err := pc.DB.Save(&todo).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update todo", err)
	}

	return c.JSON(utils.SuccessResponse(todo))
}

// DeleteTodo removes a to-do item.
func (pc *ProfileController) DeleteTodo(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	todoID := c.Params("id")

	result := pc.DB.Where("id = ? AND user_id = ?", todoID, user.ID).Delete(&models.TodoItem{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete todo", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Todo not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Todo deleted successfully",
	}))
}
