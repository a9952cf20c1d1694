package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"zapcontacts/models"
)

var (
	DB        *gorm.DB
	AppConfig Config
	envLoaded bool
)

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type OAuthConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
}

type TwilioConfig struct {
	AccountSID   string `json:"account_sid"`
	AuthToken    string `json:"-"`
	WhatsAppFrom string `json:"whatsapp_from"`
}

type Config struct {
	Environment          string       `json:"environment"`
	Google               OAuthConfig  `json:"google"`
	EncryptionKey        string       `json:"-"`
	ServerPort           string       `json:"server_port"`
	DBHost               string       `json:"db_host"`
	DBPort               string       `json:"db_port"`
	DBUser               string       `json:"db_user"`
	DBPassword           string       `json:"-"`
	DBName               string       `json:"db_name"`
	DBSSLMode            string       `json:"db_ssl_mode"`
	DBMaxIdleConns       int          `json:"db_max_idle_conns"`
	DBMaxOpenConns       int          `json:"db_max_open_conns"`
	StripeSecretKey      string       `json:"stripe_secret_key"`
	StripePublishableKey string       `json:"stripe_publishable_key"`
	StripeWebhookSecret  string       `json:"stripe_webhook_secret"`
	SentryDSN            string       `json:"sentry_dsn"`
	RateLimitImport      int          `json:"rate_limit_import"`
	Redis                RedisConfig  `json:"redis"`
	Twilio               TwilioConfig `json:"twilio"`
	FollowUpCronSpec     string       `json:"follow_up_cron_spec"`
	SMTPHost             string       `json:"smtp_host"`
	SMTPPort             string       `json:"smtp_port"`
	SMTPUsername         string       `json:"smtp_username"`
	SMTPPassword         string       `json:"-"`
	FromEmail            string       `json:"from_email"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
	envLoaded = true
}

func LoadConfig() error {
	AppConfig = Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Google: OAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		},
		EncryptionKey:  getEnv("ENCRYPTION_KEY", ""),
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "zapcontacts"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 100),

		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		StripeWebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		SentryDSN:            getEnv("SENTRY_DSN", ""),
		RateLimitImport:      getEnvAsInt("RATE_LIMIT_IMPORT", 5),
		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Twilio: TwilioConfig{
			AccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
			WhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),
		},
		FollowUpCronSpec: getEnv("FOLLOW_UP_CRON_SPEC", "0 9 * * *"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "no-reply@zapcontacts.app"),
	}

	// Validate required configurations
	if AppConfig.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if AppConfig.EncryptionKey == "" {
		return fmt.Errorf("ENCRYPTION_KEY is required")
	}
	if AppConfig.Environment == "production" {
		if AppConfig.Google.ClientID == "" || AppConfig.Google.ClientSecret == "" {
			return fmt.Errorf("Google OAuth credentials are required in production")
		}
		if AppConfig.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is required in production")
		}
	}

	logConfig()
	return nil
}

func ConnectDB() error {
	log.Println("Attempting to connect to database...")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBUser,
		AppConfig.DBPassword,
		AppConfig.DBName,
		AppConfig.DBSSLMode,
	)
	log.Println("Using connection string:", maskPassword(dsn))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(AppConfig.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("✅ Successfully connected to the database")
	log.Println("🔄 Starting database migration...")
	if err := migrateDB(DB); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	if err := models.CreateDefaultPlans(DB); err != nil {
		return fmt.Errorf("failed to seed default plans: %w", err)
	}
	log.Println("✅ Database migration completed")
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if !envLoaded && fallback == "" {
		log.Printf("⚠️ Environment variable %s not found and no fallback provided", key)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return fallback
	}
	return value
}

func maskPassword(dsn string) string {
	const passwordMarker = "password="
	startIdx := strings.Index(dsn, passwordMarker)
	if startIdx == -1 {
		return dsn
	}

	startIdx += len(passwordMarker)
	endIdx := strings.IndexAny(dsn[startIdx:], " ")
	if endIdx == -1 {
		return dsn[:startIdx] + "*****"
	}
	return dsn[:startIdx] + "*****" + dsn[startIdx+endIdx:]
}

func logConfig() {
	log.Println("🔧 Loaded configuration:")
	log.Printf("Environment: %s", AppConfig.Environment)
	log.Printf("Server Port: %s", AppConfig.ServerPort)
	log.Printf("Database: %s@%s:%s/%s",
		AppConfig.DBUser,
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBName)
	log.Printf("Integrations: Google(%t), Stripe(%t), Twilio(%t), Redis(%t)",
		AppConfig.Google.ClientID != "",
		AppConfig.StripeSecretKey != "",
		AppConfig.Twilio.AccountSID != "",
		AppConfig.Redis.Enabled)
}

func migrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Plan{},
		&models.CreditTransaction{},
		&models.Contact{},
		&models.Tag{},
		&models.ContactTag{},
		&models.Interaction{},
		&models.NotificationPreference{},
		&models.FollowUpLog{},
		&models.TodoItem{},
	)
}
