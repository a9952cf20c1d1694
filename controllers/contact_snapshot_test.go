package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"zapcontacts/models"
)

func contactWithID(id uint, name string) models.Contact {
	return models.Contact{Model: gorm.Model{ID: id}, Name: name}
}

func tagWithID(id uint, name string) models.Tag {
	return models.Tag{Model: gorm.Model{ID: id}, Name: name}
}

func TestBuildTagMap(t *testing.T) {
	contacts := []models.Contact{contactWithID(1, "Ana"), contactWithID(2, "Bruno")}
	tags := []models.Tag{tagWithID(10, "Cliente"), tagWithID(11, "VIP")}
	joins := []models.ContactTag{
		{ContactID: 1, TagID: 10},
		{ContactID: 1, TagID: 11},
		{ContactID: 2, TagID: 10},
	}

	got := BuildTagMap(contacts, tags, joins)

	assert.Len(t, got, 2)
	assert.Equal(t, []string{"Cliente", "VIP"}, tagNames(got[1]))
	assert.Equal(t, []string{"Cliente"}, tagNames(got[2]))
}

func TestBuildTagMapDropsOrphanedJoins(t *testing.T) {
	contacts := []models.Contact{contactWithID(1, "Ana")}
	tags := []models.Tag{tagWithID(10, "Cliente")}
	// Tag 99 was deleted but its join row survived
	joins := []models.ContactTag{
		{ContactID: 1, TagID: 10},
		{ContactID: 1, TagID: 99},
	}

	got := BuildTagMap(contacts, tags, joins)

	assert.Equal(t, []string{"Cliente"}, tagNames(got[1]))
}

func TestBuildTagMapContactWithoutTags(t *testing.T) {
	contacts := []models.Contact{contactWithID(1, "Ana")}

	got := BuildTagMap(contacts, nil, nil)

	// Every contact gets an entry, empty rather than missing
	tags, ok := got[1]
	assert.True(t, ok)
	assert.Empty(t, tags)
	assert.NotNil(t, tags)
}

func TestBuildTagMapIgnoresJoinsForUnknownContacts(t *testing.T) {
	contacts := []models.Contact{contactWithID(1, "Ana")}
	tags := []models.Tag{tagWithID(10, "Cliente")}
	joins := []models.ContactTag{{ContactID: 7, TagID: 10}}

	got := BuildTagMap(contacts, tags, joins)

	assert.Len(t, got, 1)
	assert.Empty(t, got[1])
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}
