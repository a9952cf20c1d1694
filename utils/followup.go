package utils

import (
	"fmt"
	"time"

	"zapcontacts/models"
)

// DaysSinceLastContact returns full days elapsed since the contact was last
// reached, or -1 when the contact was never contacted.
func DaysSinceLastContact(lastContactDate *time.Time, now time.Time) int {
	if lastContactDate == nil {
		return -1
	}
	diff := now.Sub(*lastContactDate)
	if diff < 0 {
		return 0
	}
	return int(diff.Hours() / 24)
}

// ContactsNeedingFollowUp filters contacts whose last contact is at least
// intervalDays old. Never-contacted contacts are included.
func ContactsNeedingFollowUp(contacts []models.Contact, intervalDays int, now time.Time) []models.Contact {
	var due []models.Contact
	for _, contact := range contacts {
		days := DaysSinceLastContact(contact.LastContactDate, now)
		if days < 0 || days >= intervalDays {
			due = append(due, contact)
		}
	}
	return due
}

// FollowUpMessage builds the reminder text for a contact.
func FollowUpMessage(contact models.Contact, now time.Time) string {
	days := DaysSinceLastContact(contact.LastContactDate, now)
	switch {
	case days < 0:
		return fmt.Sprintf("Lembrete: você ainda não conversou com %s", contact.Name)
	case days == 1:
		return fmt.Sprintf("Lembrete: %s foi contatado ontem", contact.Name)
	default:
		return fmt.Sprintf("Lembrete: %s foi contatado há %d dias", contact.Name, days)
	}
}
