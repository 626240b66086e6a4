package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipientFor(t *testing.T) {
	tests := []struct {
		name    string
		address string
		first   string
		last    string
	}{
		{"dotted local part", "jane.doe@example.com", "Jane", "Doe"},
		{"underscore separator", "john_smith@example.com", "John", "Smith"},
		{"plus tag keeps outer parts", "jane+catalog@example.com", "Jane", "Catalog"},
		{"single fragment", "ops@example.com", "Ops", "Subscriber"},
		{"empty local part", "@example.com", "Subscriber", "Subscriber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RecipientFor(tt.address)
			assert.Equal(t, tt.address, r.Address)
			assert.Equal(t, tt.first, r.FirstName)
			assert.Equal(t, tt.last, r.LastName)
		})
	}
}
