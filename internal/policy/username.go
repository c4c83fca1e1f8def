// Package policy validates user-chosen identifiers.
package policy

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBannedWords are rejected anywhere in a username, case-insensitively.
var DefaultBannedWords = []string{"vile", "evil", "toxic", "nsfw", "curse"}

const minUsernameLength = 3

var usernameCharset = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// UsernameResult is the outcome of validating one username.
type UsernameResult struct {
	Username string `json:"username"`
	Valid    bool   `json:"valid"`
	Message  string `json:"message"`
}

// UsernamePolicy checks usernames for length, restricted words and charset.
type UsernamePolicy struct {
	banned []string
}

// NewUsernamePolicy creates a policy. An empty list uses DefaultBannedWords.
func NewUsernamePolicy(banned []string) *UsernamePolicy {
	if len(banned) == 0 {
		banned = DefaultBannedWords
	}
	lower := make([]string, len(banned))
	for i, w := range banned {
		lower[i] = strings.ToLower(w)
	}
	return &UsernamePolicy{banned: lower}
}

// Validate applies the checks in order and reports the first failure.
func (p *UsernamePolicy) Validate(username string) UsernameResult {
	reject := func(msg string) UsernameResult {
		return UsernameResult{Username: username, Valid: false, Message: msg}
	}

	if username == "" {
		return reject("Username cannot be empty.")
	}
	if len(username) < minUsernameLength {
		return reject(fmt.Sprintf("Username must be at least %d characters.", minUsernameLength))
	}
	lower := strings.ToLower(username)
	for _, w := range p.banned {
		if strings.Contains(lower, w) {
			return reject(fmt.Sprintf("Username rejected: contains restricted word '%s'.", w))
		}
	}
	if !usernameCharset.MatchString(username) {
		return reject("Username may only include letters, digits, hyphen, underscore, or dot.")
	}
	return UsernameResult{Username: username, Valid: true, Message: "Username accepted."}
}
