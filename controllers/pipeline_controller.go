package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zapcontacts/models"
	"zapcontacts/utils"
)

type PipelineController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewPipelineController(db *gorm.DB, logger *log.Logger) *PipelineController {
	return &PipelineController{
		DB:     db,
		Logger: logger,
	}
}

// GetBoard returns the user's contacts grouped by pipeline stage, in board
// order. Contacts with no stage recorded land in the lead column.
func (pc *PipelineController) GetBoard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var contacts []models.Contact
	if err := pc.DB.Where("user_id = ?", user.ID).
		Order("updated_at DESC").
		Find(&contacts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"stages": models.PipelineStages,
		"board":  GroupByStage(contacts),
	}))
}

// GroupByStage buckets contacts per pipeline stage. Every stage is present
// in the result even when empty; an unset or unknown stage counts as lead.
func GroupByStage(contacts []models.Contact) map[string][]models.Contact {
	board := make(map[string][]models.Contact, len(models.PipelineStages))
	for _, stage := range models.PipelineStages {
		board[stage] = []models.Contact{}
	}

	for _, contact := range contacts {
		stage := contact.PipelineStage
		if !models.IsValidStage(stage) {
			stage = models.StageLead
		}
		board[stage] = append(board[stage], contact)
	}

	return board
}

// MoveStage persists a drag-and-drop stage change. Any stage may move to
// any other stage; there is no transition graph.
func (pc *PipelineController) MoveStage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	contactID := c.Params("id")

	var input struct {
		Stage string `json:"stage" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if !models.IsValidStage(input.Stage) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pipeline stage", nil)
	}

	result := pc.DB.Model(&models.Contact{}).
		Where("id = ? AND user_id = ?", contactID, user.ID).
		Update("pipeline_stage", input.Stage)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update stage", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"contact_id": utils.ParseUint(contactID),
		"stage":      input.Stage,
	}))
}
