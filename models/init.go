package models

import "gorm.io/gorm"

// Initialize default plans in your database migration
func CreateDefaultPlans(db *gorm.DB) error {
	defaultPlans := []Plan{
		{
			Name:                "free",
			Description:         "Free plan with up to 50 contacts",
			MaxContacts:         50,
			Price:               0,
			GoogleImportEnabled: true,
			RemindersEnabled:    false,
		},
		{
			Name:                "premium",
			Description:         "Premium plan with unlimited contacts and follow-up reminders",
			MaxContacts:         0,    // unlimited
			Price:               1900, // R$19
			GoogleImportEnabled: true,
			RemindersEnabled:    true,
			DisplayPrice:        "R$19",
			IsPopular:           true,
			BillingInterval:     "monthly",
		},
	}
	for _, plan := range defaultPlans {
		if err := db.FirstOrCreate(&plan, "name = ?", plan.Name).Error; err != nil {
			return err
		}
	}
	return nil
}

// MaxContactsFor returns the contact ceiling for a plan name.
// Zero means unlimited.
func MaxContactsFor(planName string) int {
	if planName == "premium" {
		return 0
	}
	return 50
}

// CanAddContact reports whether a user on planName with count existing
// contacts may create another one.
func CanAddContact(planName string, count int64) bool {
	limit := MaxContactsFor(planName)
	if limit == 0 {
		return true
	}
	return count < int64(limit)
}
