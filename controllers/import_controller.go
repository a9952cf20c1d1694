package controller

import (
	"context"
	"log"
	"time"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"zapcontacts/models"
	"zapcontacts/utils"
)

type ImportController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewImportController(db *gorm.DB, logger *log.Logger) *ImportController {
	return &ImportController{
		DB:     db,
		Logger: logger,
	}
}

type importSummary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Rejected int `json:"rejected"` // over quota or invalid
}

// ImportGoogleContacts pulls the user's Google address book through the
// People API using their stored OAuth grant and creates the contacts that
// don't already exist. Progress is broadcast to the import websocket.
func (ic *ImportController) ImportGoogleContacts(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if user.GoogleAccessToken == "" && user.GoogleRefreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Google account not connected", nil)
	}

	token, err := ic.googleTokenFor(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load Google credentials", err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	PublishImportProgress(user.ID, ImportProgress{Message: "Buscando contatos do Google...", Percent: 10, Status: "running"})

	googleContacts, err := utils.FetchGoogleContacts(ctx, GoogleOAuthConfig(), token)
	if err != nil {
		PublishImportProgress(user.ID, ImportProgress{Message: "Falha ao buscar contatos", Percent: 100, Status: "failed"})
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Failed to fetch Google contacts", err)
	}

	batch := make([]deviceContactInput, 0, len(googleContacts))
	for _, gc := range googleContacts {
		batch = append(batch, deviceContactInput{
			Name:      gc.Name,
			Phone:     gc.Phone,
			Email:     gc.Email,
			AvatarURL: gc.PhotoURL,
		})
	}

	summary := ic.importBatch(user, batch, "google")

	PublishImportProgress(user.ID, ImportProgress{
		Message: "Importação concluída",
		Percent: 100,
		Status:  "completed",
	})

	utils.LogEvent("google_import_completed", map[string]interface{}{
		"user_id":  user.ID,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
		"rejected": summary.Rejected,
	})

	return c.JSON(utils.SuccessResponse(summary))
}

type deviceContactInput struct {
	Name      string `json:"name" validate:"required,max=200"`
	Phone     string `json:"phone" validate:"required,max=50"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// ImportDeviceContacts accepts a batch picked from the browser's native
// contact picker and creates the ones that don't already exist.
func (ic *ImportController) ImportDeviceContacts(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Contacts []deviceContactInput `json:"contacts" validate:"required,min=1,max=1000,dive"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	summary := ic.importBatch(user, input.Contacts, "device")

	return c.JSON(utils.SuccessResponse(summary))
}

// importBatch creates contacts that do not already exist, skipping ones that
// match by normalized phone or email and rejecting the remainder once the
// plan's contact ceiling is hit.
func (ic *ImportController) importBatch(user *models.User, batch []deviceContactInput, source string) importSummary {
	var summary importSummary

	var existing []models.Contact
	if err := ic.DB.Where("user_id = ?", user.ID).Find(&existing).Error; err != nil {
		ic.Logger.Printf("import: failed to load existing contacts for user %d: %v", user.ID, err)
		summary.Rejected = len(batch)
		return summary
	}
	count := int64(len(existing))

	total := len(batch)
	for i, entry := range batch {
		if entry.Name == "" || entry.Phone == "" {
			summary.Rejected++
			continue
		}
		if entry.Email != "" {
			if err := checkmail.ValidateFormat(entry.Email); err != nil {
				// Keep the contact, drop the bad email
				entry.Email = ""
			}
		}

		gc := utils.GoogleContact{Name: entry.Name, Phone: entry.Phone, Email: entry.Email}
		duplicate := false
		for _, known := range existing {
			if utils.MatchesExistingContact(gc, known) {
				duplicate = true
				break
			}
		}
		if duplicate {
			summary.Skipped++
			continue
		}

		if !models.CanAddContact(user.PlanName, count) {
			summary.Rejected++
			continue
		}

		contact := models.Contact{
			UserID:        user.ID,
			Name:          entry.Name,
			Phone:         entry.Phone,
			Email:         utils.NormalizeEmail(entry.Email),
			AvatarURL:     entry.AvatarURL,
			PipelineStage: models.StageLead,
			Source:        source,
		}
		if err := ic.DB.Create(&contact).Error; err != nil {
			ic.Logger.Printf("import: failed to create contact for user %d: %v", user.ID, err)
			summary.Rejected++
			continue
		}

		existing = append(existing, contact)
		count++
		summary.Imported++

		if source == "google" && total > 0 && i%25 == 0 {
			PublishImportProgress(user.ID, ImportProgress{
				Message: "Importando contatos...",
				Percent: 10 + (i*85)/total,
				Status:  "running",
			})
		}
	}

	return summary
}

// googleTokenFor reconstructs an oauth2 token from the encrypted columns.
func (ic *ImportController) googleTokenFor(user *models.User) (*oauth2.Token, error) {
	access, err := utils.Decrypt(user.GoogleAccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.Decrypt(user.GoogleRefreshToken)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
	}
	if user.GoogleTokenExpiry != nil {
		token.Expiry = *user.GoogleTokenExpiry
	}
	return token, nil
}
