package utils

import (
	"fmt"
	"strings"

	"zapcontacts/models"
)

// BuildVCard renders a contact as a vCard 3.0 document for sharing.
func BuildVCard(contact models.Contact) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:3.0\r\n")
	fmt.Fprintf(&b, "FN:%s\r\n", escapeVCardValue(contact.Name))
	fmt.Fprintf(&b, "TEL;TYPE=CELL:%s\r\n", CleanPhone(contact.Phone))
	if contact.Email != "" {
		fmt.Fprintf(&b, "EMAIL:%s\r\n", escapeVCardValue(contact.Email))
	}
	if contact.AvatarURL != "" && !strings.HasPrefix(contact.AvatarURL, "data:") {
		fmt.Fprintf(&b, "PHOTO;VALUE=URI:%s\r\n", contact.AvatarURL)
	}
	b.WriteString("END:VCARD\r\n")

	return b.String()
}

func escapeVCardValue(v string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\r\n", "\\n", "\r", "\\n", "\n", "\\n")
	return r.Replace(v)
}
