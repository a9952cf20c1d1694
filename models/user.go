package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user account in the system
type User struct {
	gorm.Model

	// Authentication fields
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"not null" json:"-"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`
	OTP           string `json:"-"`
	OTPExpiresAt  time.Time
	OTPVerified   bool `gorm:"default:false"`

	// Google OAuth fields
	GoogleID           *string `gorm:"uniqueIndex" json:"google_id,omitempty"`
	GoogleImageURL     *string `json:"google_image_url,omitempty"`
	GoogleAccessToken  string  `json:"-"` // Encrypted in application layer
	GoogleRefreshToken string  `json:"-"` // Encrypted in application layer
	GoogleTokenExpiry  *time.Time

	// Profile information
	Name      *string `json:"name,omitempty"`
	Company   *string `json:"company,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Timezone  string  `gorm:"default:'America/Sao_Paulo'" json:"timezone"`
	Language  string  `gorm:"default:'pt-BR'" json:"language"`

	// Account status
	IsActive bool `gorm:"default:true" json:"is_active"`
	IsAdmin  bool `gorm:"default:false" json:"is_admin"`

	// Plan information
	PlanID   *uint  `json:"plan_id,omitempty"`
	PlanName string `gorm:"default:'free'" json:"plan_name"` // free, premium

	// Stripe integration
	StripeCustomerID    *string `gorm:"index" json:"stripe_customer_id,omitempty"`
	StripePaymentMethod *string `json:"stripe_payment_method,omitempty"`
	DefaultCurrency     string  `gorm:"default:'brl'" json:"default_currency"`

	// Relations
	Contacts               []Contact               `gorm:"foreignKey:UserID" json:"contacts,omitempty"`
	Tags                   []Tag                   `gorm:"foreignKey:UserID" json:"tags,omitempty"`
	Transactions           []CreditTransaction     `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	TodoItems              []TodoItem              `gorm:"foreignKey:UserID" json:"todo_items,omitempty"`
	NotificationPreference *NotificationPreference `gorm:"foreignKey:UserID" json:"notification_preference,omitempty"`
}

// RefreshToken stores issued refresh tokens so sessions can be revoked
type RefreshToken struct {
	gorm.Model
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	SessionID string     `gorm:"not null;uniqueIndex" json:"session_id"`
	Token     string     `gorm:"not null" json:"-"`
	UserAgent string     `json:"user_agent"`
	IPAddress string     `json:"ip_address"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`

	User User `json:"-"`
}

// Plan represents subscription tiers
type Plan struct {
	gorm.Model
	Name        string `gorm:"not null;uniqueIndex" json:"name"` // free, premium
	Description string `json:"description"`

	// Limits
	MaxContacts int `gorm:"default:50" json:"max_contacts"` // 0 means unlimited
	Price       int `gorm:"not null" json:"price"`          // in cents

	// Features
	GoogleImportEnabled bool `gorm:"default:true" json:"google_import_enabled"`
	RemindersEnabled    bool `gorm:"default:false" json:"reminders_enabled"`

	// For display purposes
	DisplayPrice string `gorm:"-" json:"display_price"` // e.g. "R$19"
	IsPopular    bool   `gorm:"default:false" json:"is_popular"`

	StripePriceID   string `json:"stripe_price_id"`                            // price_xxx from Stripe dashboard
	BillingInterval string `json:"billing_interval" gorm:"default:'monthly'"` // one_time, monthly, yearly
}

// CreditTransaction records plan purchases
type CreditTransaction struct {
	gorm.Model
	UserID uint  `gorm:"not null;index" json:"user_id"`
	PlanID *uint `json:"plan_id,omitempty"`

	// Financial information
	Amount        int    `json:"amount"` // in cents
	Currency      string `gorm:"default:'brl'" json:"currency"`
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `gorm:"default:'pending'" json:"payment_status"` // pending, completed, failed, refunded

	// Metadata
	Description string `json:"description"`
	ReferenceID string `json:"reference_id"`

	StripePaymentIntentID string `json:"stripe_payment_intent_id"`
	StripeChargeID        string `json:"stripe_charge_id"`
	ReceiptURL            string `json:"receipt_url,omitempty"`

	// Relations
	User User  `json:"-"`
	Plan *Plan `json:"plan,omitempty"`
}

// NotificationPreference holds per-user follow-up reminder settings
type NotificationPreference struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	Enabled              bool `gorm:"default:false" json:"enabled"`
	FollowUpIntervalDays int  `gorm:"default:7" json:"follow_up_interval_days"`

	User User `json:"-"`
}

// FollowUpLog records reminders already delivered so the worker does not repeat them
type FollowUpLog struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ContactID uint      `gorm:"not null;index" json:"contact_id"`
	Channel   string    `gorm:"default:'whatsapp'" json:"channel"`
	SentAt    time.Time `gorm:"not null" json:"sent_at"`
	DaysSince int       `json:"days_since"`

	User    User    `json:"-"`
	Contact Contact `json:"-"`
}

// TodoItem is a personal to-do entry shown on the profile page
type TodoItem struct {
	gorm.Model
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Text   string `gorm:"not null" json:"text"`
	Done   bool   `gorm:"default:false" json:"done"`

	User User `json:"-"`
}
