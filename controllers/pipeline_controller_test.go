package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zapcontacts/models"
)

func TestGroupByStage(t *testing.T) {
	contacts := []models.Contact{
		{Name: "Ana", PipelineStage: models.StageLead},
		{Name: "Bruno", PipelineStage: models.StageNegotiation},
		{Name: "Carla", PipelineStage: models.StageWon},
		{Name: "Diego", PipelineStage: models.StageLead},
	}

	board := GroupByStage(contacts)

	assert.Len(t, board, len(models.PipelineStages))
	assert.Len(t, board[models.StageLead], 2)
	assert.Len(t, board[models.StageNegotiation], 1)
	assert.Len(t, board[models.StageWon], 1)
	assert.Empty(t, board[models.StageProspect])
	assert.Empty(t, board[models.StageLost])
}

func TestGroupByStageAllColumnsPresent(t *testing.T) {
	board := GroupByStage(nil)

	assert.Len(t, board, len(models.PipelineStages))
	for _, stage := range models.PipelineStages {
		column, ok := board[stage]
		assert.True(t, ok, stage)
		assert.NotNil(t, column)
		assert.Empty(t, column)
	}
}

func TestGroupByStageDefaultsInvalidToLead(t *testing.T) {
	contacts := []models.Contact{
		{Name: "Ana", PipelineStage: ""},
		{Name: "Bruno", PipelineStage: "archived"},
		{Name: "Carla", PipelineStage: models.StageLost},
	}

	board := GroupByStage(contacts)

	assert.Len(t, board[models.StageLead], 2)
	assert.Len(t, board[models.StageLost], 1)
}
