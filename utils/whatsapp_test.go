package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPhone(t *testing.T) {
	assert.Equal(t, "+5511999999999", CleanPhone("+55 (11) 99999-9999"))
	assert.Equal(t, "11999999999", CleanPhone("(11) 99999-9999"))
	assert.Equal(t, "1199", CleanPhone("11 a9b9"))
	// Plus sign only survives at the start
	assert.Equal(t, "5511", CleanPhone("55+11"))
	assert.Equal(t, "", CleanPhone("abc"))
	assert.Equal(t, "", CleanPhone(""))
}

func TestDialDigits(t *testing.T) {
	assert.Equal(t, "5511999999999", DialDigits("+55 11 99999-9999"))
	assert.Equal(t, "11988887777", DialDigits("(11) 98888-7777"))
	assert.Equal(t, "", DialDigits("sem telefone"))
}

func TestBuildWhatsAppLink(t *testing.T) {
	link := BuildWhatsAppLink("+55 (11) 99999-9999", "")
	assert.Equal(t, "https://wa.me/5511999999999", link.WebURL)
	assert.Equal(t, "whatsapp://send?phone=5511999999999", link.NativeURI)
}

func TestBuildWhatsAppLinkWithMessage(t *testing.T) {
	link := BuildWhatsAppLink("11999999999", "Olá, tudo bem?")
	assert.Equal(t, "https://wa.me/11999999999?text=Ol%C3%A1%2C+tudo+bem%3F", link.WebURL)
	assert.Equal(t, "whatsapp://send?phone=11999999999&text=Ol%C3%A1%2C+tudo+bem%3F", link.NativeURI)
}

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "(11) 99999-9999", FormatPhoneNumber("11999999999"))
	assert.Equal(t, "(11) 3333-4444", FormatPhoneNumber("1133334444"))
	// Already formatted input is normalized the same way
	assert.Equal(t, "(11) 99999-9999", FormatPhoneNumber("(11) 99999-9999"))
	// Unrecognized lengths pass through untouched
	assert.Equal(t, "+5511999999999", FormatPhoneNumber("+5511999999999"))
	assert.Equal(t, "123", FormatPhoneNumber("123"))
	assert.Equal(t, "", FormatPhoneNumber(""))
}
