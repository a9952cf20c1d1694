package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink holds both forms of a WhatsApp deep link. Mobile clients try
// the native URI first and fall back to the web URL after a fixed delay.
type WhatsAppLink struct {
	WebURL    string `json:"web_url"`
	NativeURI string `json:"native_uri"`
}

// CleanPhone strips everything from a phone number except digits and a
// leading plus sign.
func CleanPhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DialDigits returns the digits used in wa.me links (no plus sign).
func DialDigits(phone string) string {
	return strings.TrimPrefix(CleanPhone(phone), "+")
}

// BuildWhatsAppLink constructs the deep link pair for a phone number.
// An optional message is URL-encoded into both forms.
func BuildWhatsAppLink(phone, message string) WhatsAppLink {
	digits := DialDigits(phone)

	web := "https://wa.me/" + digits
	native := "whatsapp://send?phone=" + digits
	if message != "" {
		encoded := url.QueryEscape(message)
		web += "?text=" + encoded
		native += "&text=" + encoded
	}

	return WhatsAppLink{WebURL: web, NativeURI: native}
}

// FormatPhoneNumber formats Brazilian phone numbers for display,
// e.g. (11) 99999-9999. Other lengths are returned unchanged.
func FormatPhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	switch len(cleaned) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", cleaned[:2], cleaned[2:7], cleaned[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", cleaned[:2], cleaned[2:6], cleaned[6:])
	default:
		return phone
	}
}
