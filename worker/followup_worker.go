package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"zapcontacts/config"
	"zapcontacts/models"
	"zapcontacts/utils"
)

// FollowUpWorker sends WhatsApp reminders for contacts that have gone
// too long without being contacted.
type FollowUpWorker struct {
	db     *gorm.DB
	client *twilio.RestClient
	redis  *redis.Client
	cron   *cron.Cron
	logger *log.Logger
}

func NewFollowUpWorker(db *gorm.DB, logger *log.Logger) *FollowUpWorker {
	w := &FollowUpWorker{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: config.AppConfig.Twilio.AccountSID,
			Password: config.AppConfig.Twilio.AuthToken,
		}),
		cron:   cron.New(),
		logger: logger,
	}

	if config.AppConfig.Redis.Enabled {
		w.redis = redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.Redis.Address,
			Password: config.AppConfig.Redis.Password,
			DB:       config.AppConfig.Redis.DB,
		})
	}

	return w
}

// Start schedules the daily reminder run and blocks until the context is
// cancelled.
func (w *FollowUpWorker) Start(ctx context.Context) {
	w.logger.Println("Starting follow-up worker...")

	_, err := w.cron.AddFunc(config.AppConfig.FollowUpCronSpec, func() {
		w.ProcessFollowUps(ctx)
	})
	if err != nil {
		w.logger.Printf("Invalid follow-up cron spec %q: %v", config.AppConfig.FollowUpCronSpec, err)
		return
	}

	w.cron.Start()

	<-ctx.Done()
	w.logger.Println("Stopping follow-up worker...")
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
}

// ProcessFollowUps runs one reminder pass over every user that has
// notifications enabled.
func (w *FollowUpWorker) ProcessFollowUps(ctx context.Context) {
	w.logger.Println("Starting follow-up processing...")

	var prefs []models.NotificationPreference
	if err := w.db.Where("enabled = ?", true).Find(&prefs).Error; err != nil {
		w.logger.Printf("Failed to fetch notification preferences: %v", err)
		sentry.CaptureException(err)
		return
	}

	for _, pref := range prefs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		w.processUser(ctx, pref)
	}

	w.logger.Println("Follow-up processing completed")
}

func (w *FollowUpWorker) processUser(ctx context.Context, pref models.NotificationPreference) {
	var user models.User
	if err := w.db.First(&user, pref.UserID).Error; err != nil {
		w.logger.Printf("User %d: failed to load: %v", pref.UserID, err)
		return
	}

	var plan models.Plan
	if err := w.db.Where("name = ?", user.PlanName).First(&plan).Error; err != nil {
		w.logger.Printf("User %d: failed to load plan %q: %v", user.ID, user.PlanName, err)
		return
	}
	if !reminderEligible(plan, pref) {
		return
	}

	var contacts []models.Contact
	if err := w.db.Where("user_id = ?", user.ID).Find(&contacts).Error; err != nil {
		w.logger.Printf("User %d: failed to load contacts: %v", user.ID, err)
		return
	}

	now := time.Now()
	due := utils.ContactsNeedingFollowUp(contacts, pref.FollowUpIntervalDays, now)

	for _, contact := range due {
		if !w.claimDaily(ctx, contact.ID, now) {
			continue
		}
		w.sendReminder(user, contact, now)
	}
}

// reminderEligible gates delivery on both the user's opt-in and the plan's
// reminder feature flag.
func reminderEligible(plan models.Plan, pref models.NotificationPreference) bool {
	return pref.Enabled && plan.RemindersEnabled
}

// claimDaily reserves the contact's reminder slot for today. Redis SETNX
// keeps multiple instances from double-sending; without Redis the
// FollowUpLog check below is the only guard.
func (w *FollowUpWorker) claimDaily(ctx context.Context, contactID uint, now time.Time) bool {
	day := now.Format("2006-01-02")

	if w.redis != nil {
		key := fmt.Sprintf("followup:%d:%s", contactID, day)
		ok, err := w.redis.SetNX(ctx, key, 1, 48*time.Hour).Result()
		if err != nil {
			w.logger.Printf("Redis claim failed for contact %d: %v", contactID, err)
		} else if !ok {
			return false
		}
	}

	var count int64
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := w.db.Model(&models.FollowUpLog{}).
		Where("contact_id = ? AND sent_at >= ?", contactID, startOfDay).
		Count(&count).Error; err != nil {
		w.logger.Printf("Log check failed for contact %d: %v", contactID, err)
		return false
	}
	return count == 0
}

func (w *FollowUpWorker) sendReminder(user models.User, contact models.Contact, now time.Time) {
	message := utils.FollowUpMessage(contact, now)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + utils.DialDigits(contact.Phone))
	params.SetFrom("whatsapp:" + config.AppConfig.Twilio.WhatsAppFrom)
	params.SetBody(message)

	status := "sent"
	if _, err := w.client.Api.CreateMessage(params); err != nil {
		w.logger.Printf("Failed to send reminder for contact %d: %v", contact.ID, err)
		sentry.CaptureException(err)
		status = "failed"
	}

	followUpLog := models.FollowUpLog{
		UserID:    user.ID,
		ContactID: contact.ID,
		Channel:   "whatsapp",
		SentAt:    now,
		DaysSince: utils.DaysSinceLastContact(contact.LastContactDate, now),
	}
	if err := w.db.Create(&followUpLog).Error; err != nil {
		w.logger.Printf("Failed to log reminder for contact %d: %v", contact.ID, err)
	}

	utils.LogEvent("follow_up_sent", map[string]interface{}{
		"user_id":    user.ID,
		"contact_id": contact.ID,
		"status":     status,
	})
}
