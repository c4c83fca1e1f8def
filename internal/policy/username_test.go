package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernamePolicy_Validate(t *testing.T) {
	p := NewUsernamePolicy(nil)
	tests := []struct {
		name     string
		username string
		valid    bool
		message  string
	}{
		{"empty", "", false, "Username cannot be empty."},
		{"too short", "ab", false, "Username must be at least 3 characters."},
		{"banned word", "MrEvilGenius", false, "Username rejected: contains restricted word 'evil'."},
		{"bad charset", "ada park", false, "Username may only include letters, digits, hyphen, underscore, or dot."},
		{"ok", "ada.park_01", true, "Username accepted."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Validate(tt.username)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.message, got.Message)
			assert.Equal(t, tt.username, got.Username)
		})
	}
}

func TestUsernamePolicy_CustomWords(t *testing.T) {
	p := NewUsernamePolicy([]string{"Spam"})
	assert.False(t, p.Validate("spammer").Valid)
	assert.True(t, p.Validate("evil_twin").Valid)
}
