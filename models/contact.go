package models

import (
	"time"

	"gorm.io/gorm"
)

// Pipeline stages a contact can sit in. Transitions are unrestricted:
// any stage may move to any other stage.
const (
	StageLead        = "lead"
	StageProspect    = "prospect"
	StageNegotiation = "negotiation"
	StageWon         = "won"
	StageLost        = "lost"
)

// PipelineStages lists the stages in board order.
var PipelineStages = []string{StageLead, StageProspect, StageNegotiation, StageWon, StageLost}

// IsValidStage reports whether s is one of the known pipeline stages.
func IsValidStage(s string) bool {
	for _, stage := range PipelineStages {
		if s == stage {
			return true
		}
	}
	return false
}

// TagColors is the fixed palette tags may use.
var TagColors = []string{
	"#EF4444", // red
	"#F97316", // orange
	"#EAB308", // yellow
	"#22C55E", // green
	"#06B6D4", // cyan
	"#3B82F6", // blue
	"#8B5CF6", // purple
	"#EC4899", // pink
}

// IsValidTagColor reports whether c belongs to the palette.
func IsValidTagColor(c string) bool {
	for _, color := range TagColors {
		if c == color {
			return true
		}
	}
	return false
}

// Contact represents a single WhatsApp contact owned by a user
type Contact struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Name  string `gorm:"not null" json:"name"`
	Phone string `gorm:"not null" json:"phone"` // free-form, normalized only for dialing
	Email string `gorm:"index" json:"email"`

	AvatarURL       string     `json:"avatar_url"` // data-URI or remote image
	LastContactDate *time.Time `json:"last_contact_date"`
	PipelineStage   string     `gorm:"default:'lead';index" json:"pipeline_stage"`

	Source string `json:"source"` // manual, google, device

	// Relations
	ContactTags []ContactTag `gorm:"foreignKey:ContactID" json:"-"`
	Interaction *Interaction `gorm:"foreignKey:ContactID" json:"interaction,omitempty"`
}

// Tag represents a user-defined label for contacts
type Tag struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Name  string `gorm:"not null" json:"name"`
	Color string `gorm:"not null" json:"color"`
}

// ContactTag joins contacts to tags. The full set for a contact is replaced
// on every assignment, never diffed.
type ContactTag struct {
	gorm.Model
	ContactID uint `gorm:"not null;index" json:"contact_id"`
	TagID     uint `gorm:"not null;index" json:"tag_id"`
}

// Interaction holds the notes and last-message record for a contact.
// One row per contact, upserted on save.
type Interaction struct {
	gorm.Model
	ContactID uint `gorm:"not null;uniqueIndex" json:"contact_id"`

	LastMessage     string     `gorm:"type:text" json:"last_message"`
	Notes           string     `gorm:"type:text" json:"notes"`
	LastContactDate *time.Time `json:"last_contact_date"`

	Contact Contact `json:"-"`
}
