package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"zapcontacts/models"
)

func TestDaysSinceLastContact(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, -1, DaysSinceLastContact(nil, now))

	sameDay := now.Add(-3 * time.Hour)
	assert.Equal(t, 0, DaysSinceLastContact(&sameDay, now))

	tenDays := now.AddDate(0, 0, -10)
	assert.Equal(t, 10, DaysSinceLastContact(&tenDays, now))

	// A date in the future clamps to zero
	future := now.Add(24 * time.Hour)
	assert.Equal(t, 0, DaysSinceLastContact(&future, now))
}

func TestContactsNeedingFollowUp(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -2)
	stale := now.AddDate(0, 0, -8)
	exactly := now.AddDate(0, 0, -7)

	contacts := []models.Contact{
		{Name: "Ana", LastContactDate: &recent},
		{Name: "Bruno", LastContactDate: &stale},
		{Name: "Carla", LastContactDate: nil},
		{Name: "Diego", LastContactDate: &exactly},
	}

	due := ContactsNeedingFollowUp(contacts, 7, now)

	names := make([]string, 0, len(due))
	for _, c := range due {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Bruno", "Carla", "Diego"}, names)
}

func TestContactsNeedingFollowUpEmpty(t *testing.T) {
	now := time.Now()
	assert.Empty(t, ContactsNeedingFollowUp(nil, 7, now))

	recent := now.Add(-time.Hour)
	contacts := []models.Contact{{Name: "Ana", LastContactDate: &recent}}
	assert.Empty(t, ContactsNeedingFollowUp(contacts, 7, now))
}

func TestFollowUpMessage(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	never := models.Contact{Name: "Ana"}
	assert.Equal(t, "Lembrete: você ainda não conversou com Ana", FollowUpMessage(never, now))

	yesterday := now.AddDate(0, 0, -1)
	one := models.Contact{Name: "Bruno", LastContactDate: &yesterday}
	assert.Equal(t, "Lembrete: Bruno foi contatado ontem", FollowUpMessage(one, now))

	tenDays := now.AddDate(0, 0, -10)
	many := models.Contact{Name: "Carla", LastContactDate: &tenDays}
	assert.Equal(t, "Lembrete: Carla foi contatado há 10 dias", FollowUpMessage(many, now))
}
