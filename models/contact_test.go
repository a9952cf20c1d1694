package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStage(t *testing.T) {
	for _, stage := range PipelineStages {
		assert.True(t, IsValidStage(stage), stage)
	}
	assert.False(t, IsValidStage(""))
	assert.False(t, IsValidStage("Lead"))
	assert.False(t, IsValidStage("archived"))
}

func TestPipelineStagesOrder(t *testing.T) {
	assert.Equal(t, []string{"lead", "prospect", "negotiation", "won", "lost"}, PipelineStages)
}

func TestIsValidTagColor(t *testing.T) {
	assert.Len(t, TagColors, 8)
	for _, color := range TagColors {
		assert.True(t, IsValidTagColor(color), color)
	}
	assert.False(t, IsValidTagColor("#000000"))
	assert.False(t, IsValidTagColor("red"))
	assert.False(t, IsValidTagColor(""))
	// Palette comparison is exact, not case-insensitive
	assert.False(t, IsValidTagColor("#ef4444"))
}

func TestCanAddContact(t *testing.T) {
	assert.True(t, CanAddContact("free", 0))
	assert.True(t, CanAddContact("free", 49))
	assert.False(t, CanAddContact("free", 50))
	assert.False(t, CanAddContact("free", 120))

	assert.True(t, CanAddContact("premium", 0))
	assert.True(t, CanAddContact("premium", 50))
	assert.True(t, CanAddContact("premium", 100000))

	// Unknown plans get the free ceiling
	assert.False(t, CanAddContact("", 50))
}

func TestMaxContactsFor(t *testing.T) {
	assert.Equal(t, 50, MaxContactsFor("free"))
	assert.Equal(t, 0, MaxContactsFor("premium"))
	assert.Equal(t, 50, MaxContactsFor("unknown"))
}
