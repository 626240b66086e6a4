// Package email derives display metadata from notification addresses so
// downstream mail consumers can greet recipients without a user directory.
package email

import (
	"strings"
	"unicode"
)

// Recipient is the display form of a notification address.
type Recipient struct {
	Address   string `json:"address"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RecipientFor splits the local part of an address on common separators and
// capitalizes the first and last fragment. "jane.doe@example.com" becomes
// Jane Doe; addresses without separators fall back to a generic last name.
func RecipientFor(address string) Recipient {
	localPart := address
	if at := strings.IndexByte(address, '@'); at >= 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return Recipient{Address: address, FirstName: "Subscriber", LastName: "Subscriber"}
	}

	first := capitalize(parts[0])
	last := "Subscriber"
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return Recipient{Address: address, FirstName: first, LastName: last}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
