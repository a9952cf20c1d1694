package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zapcontacts/models"
)

func TestReminderEligible(t *testing.T) {
	free := models.Plan{Name: "free", RemindersEnabled: false}
	premium := models.Plan{Name: "premium", RemindersEnabled: true}
	optedIn := models.NotificationPreference{Enabled: true}
	optedOut := models.NotificationPreference{Enabled: false}

	assert.True(t, reminderEligible(premium, optedIn))

	// The plan flag gates delivery even for opted-in users
	assert.False(t, reminderEligible(free, optedIn))

	// Opt-out wins regardless of plan
	assert.False(t, reminderEligible(premium, optedOut))
	assert.False(t, reminderEligible(free, optedOut))
}
