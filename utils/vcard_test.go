package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"zapcontacts/models"
)

func TestBuildVCard(t *testing.T) {
	card := BuildVCard(models.Contact{
		Name:      "Ana Silva",
		Phone:     "(11) 99999-9999",
		Email:     "ana@example.com",
		AvatarURL: "https://example.com/ana.jpg",
	})

	lines := strings.Split(strings.TrimSuffix(card, "\r\n"), "\r\n")
	assert.Equal(t, []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Ana Silva",
		"TEL;TYPE=CELL:11999999999",
		"EMAIL:ana@example.com",
		"PHOTO;VALUE=URI:https://example.com/ana.jpg",
		"END:VCARD",
	}, lines)
}

func TestBuildVCardMinimal(t *testing.T) {
	card := BuildVCard(models.Contact{Name: "Bruno", Phone: "11988887777"})

	assert.NotContains(t, card, "EMAIL:")
	assert.NotContains(t, card, "PHOTO")
	assert.Contains(t, card, "FN:Bruno\r\n")
	assert.Contains(t, card, "TEL;TYPE=CELL:11988887777\r\n")
}

func TestBuildVCardSkipsDataURIAvatar(t *testing.T) {
	card := BuildVCard(models.Contact{
		Name:      "Carla",
		Phone:     "11977776666",
		AvatarURL: "data:image/png;base64,iVBORw0KGgo=",
	})
	assert.NotContains(t, card, "PHOTO")
}

func TestBuildVCardEscapesSpecialCharacters(t *testing.T) {
	card := BuildVCard(models.Contact{
		Name:  "Silva; Ana, Ltda\\",
		Phone: "11966665555",
	})
	assert.Contains(t, card, "FN:Silva\\; Ana\\, Ltda\\\\\r\n")
}

func TestBuildVCardEscapesLineBreaks(t *testing.T) {
	card := BuildVCard(models.Contact{
		Name:  "Ana\rSilva\nLtda\r\nME",
		Phone: "11955554444",
	})
	// No raw CR or LF may survive inside a field value
	assert.Contains(t, card, "FN:Ana\\nSilva\\nLtda\\nME\r\n")
}
