package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zapcontacts/models"
)

func testContacts() []models.Contact {
	return []models.Contact{
		{Name: "Ana Silva", Phone: "(11) 99999-9999", Email: "ana@example.com"},
		{Name: "Bruno Costa", Phone: "(21) 98888-7777", Email: "bruno@empresa.com.br"},
		{Name: "Carla Souza", Phone: "(31) 97777-6666", Email: ""},
	}
}

func TestFilterContactsByName(t *testing.T) {
	got := FilterContacts(testContacts(), "ana")
	assert.Len(t, got, 1)
	assert.Equal(t, "Ana Silva", got[0].Name)

	// Case-insensitive on both sides
	got = FilterContacts(testContacts(), "BRUNO")
	assert.Len(t, got, 1)
	assert.Equal(t, "Bruno Costa", got[0].Name)
}

func TestFilterContactsByPhone(t *testing.T) {
	got := FilterContacts(testContacts(), "98888")
	assert.Len(t, got, 1)
	assert.Equal(t, "Bruno Costa", got[0].Name)

	// Substring anywhere in the stored phone
	got = FilterContacts(testContacts(), "(31)")
	assert.Len(t, got, 1)
	assert.Equal(t, "Carla Souza", got[0].Name)
}

func TestFilterContactsByEmail(t *testing.T) {
	got := FilterContacts(testContacts(), "empresa.com.br")
	assert.Len(t, got, 1)
	assert.Equal(t, "Bruno Costa", got[0].Name)
}

func TestFilterContactsNoMatch(t *testing.T) {
	got := FilterContacts(testContacts(), "diego")
	assert.Empty(t, got)
}

func TestFilterContactsEmptyQueryReturnsAll(t *testing.T) {
	got := FilterContacts(testContacts(), "")
	assert.Len(t, got, 3)
}

func TestFilterContactsNilInput(t *testing.T) {
	assert.Empty(t, FilterContacts(nil, "ana"))
}
