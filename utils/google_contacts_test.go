package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zapcontacts/models"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511999999999", NormalizePhone("+55 (11) 99999-9999"))
	assert.Equal(t, "11999999999", NormalizePhone("11 99999 9999"))
	assert.Equal(t, "", NormalizePhone(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("  "))
}

func TestMatchesExistingContact(t *testing.T) {
	existing := models.Contact{
		Name:  "Ana Silva",
		Phone: "(11) 99999-9999",
		Email: "ana@example.com",
	}

	// Same phone, different formatting
	assert.True(t, MatchesExistingContact(GoogleContact{
		Name: "Ana", Phone: "11 99999 9999",
	}, existing))

	// Same email, different case
	assert.True(t, MatchesExistingContact(GoogleContact{
		Name: "Ana", Phone: "11 88888 8888", Email: "ANA@example.com",
	}, existing))

	// No overlap
	assert.False(t, MatchesExistingContact(GoogleContact{
		Name: "Ana Silva", Phone: "11 77777 7777", Email: "outra@example.com",
	}, existing))

	// Empty fields never match
	assert.False(t, MatchesExistingContact(GoogleContact{Name: "Ana"}, existing))
	assert.False(t, MatchesExistingContact(GoogleContact{
		Name: "Ana", Phone: "11 99999 9999",
	}, models.Contact{Name: "Sem Telefone"}))
}
