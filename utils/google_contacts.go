package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"

	"zapcontacts/models"
)

const peopleAPIURL = "https://people.googleapis.com/v1/people/me/connections" +
	"?personFields=names,phoneNumbers,emailAddresses,photos&pageSize=1000"

// GoogleContact is a flattened Person from the Google People API.
type GoogleContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"`
	Resource string `json:"resource"`
}

type peopleConnectionsResponse struct {
	Connections []struct {
		ResourceName string `json:"resourceName"`
		Names        []struct {
			DisplayName string `json:"displayName"`
		} `json:"names"`
		PhoneNumbers []struct {
			Value string `json:"value"`
		} `json:"phoneNumbers"`
		EmailAddresses []struct {
			Value string `json:"value"`
		} `json:"emailAddresses"`
		Photos []struct {
			URL string `json:"url"`
		} `json:"photos"`
	} `json:"connections"`
}

// FetchGoogleContacts pulls the user's connections from the People API using
// an authorized oauth2 client. Entries without a name or phone are skipped.
func FetchGoogleContacts(ctx context.Context, oauthConfig *oauth2.Config, token *oauth2.Token) ([]GoogleContact, error) {
	client := oauthConfig.Client(ctx, token)

	resp, err := client.Get(peopleAPIURL)
	if err != nil {
		return nil, fmt.Errorf("people API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("people API error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed peopleConnectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse people API response: %w", err)
	}

	var contacts []GoogleContact
	for _, conn := range parsed.Connections {
		gc := GoogleContact{Resource: conn.ResourceName}
		if len(conn.Names) > 0 {
			gc.Name = conn.Names[0].DisplayName
		}
		if len(conn.PhoneNumbers) > 0 {
			gc.Phone = conn.PhoneNumbers[0].Value
		}
		if len(conn.EmailAddresses) > 0 {
			gc.Email = conn.EmailAddresses[0].Value
		}
		if len(conn.Photos) > 0 {
			gc.PhotoURL = conn.Photos[0].URL
		}

		if gc.Name == "" || gc.Phone == "" {
			continue
		}
		contacts = append(contacts, gc)
	}

	return contacts, nil
}

// NormalizePhone reduces a phone number to bare digits for comparison.
func NormalizePhone(phone string) string {
	return DialDigits(phone)
}

// NormalizeEmail lowercases and trims an email for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MatchesExistingContact reports whether an imported Google contact is the
// same person as an existing contact, by normalized phone or email.
func MatchesExistingContact(gc GoogleContact, existing models.Contact) bool {
	if gc.Phone != "" && existing.Phone != "" {
		if NormalizePhone(gc.Phone) == NormalizePhone(existing.Phone) {
			return true
		}
	}
	if gc.Email != "" && existing.Email != "" {
		if NormalizeEmail(gc.Email) == NormalizeEmail(existing.Email) {
			return true
		}
	}
	return false
}
