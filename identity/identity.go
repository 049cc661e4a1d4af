// Package identity generates human-identity values for test data that are unlikely to collide
// with values produced by other test runs sharing the same remote store.
package identity

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	defaultEmailPrefix = "qa"
	defaultNameBase    = "Test User"
	emailDomain        = "mail.com"
	shortTokenLength   = 8
)

// UniqueEmail returns "{prefix}.{uuid}@mail.com".
//
// Whitespace and '@' characters are removed from the prefix, so the result always contains
// exactly one '@' and no whitespace. An empty prefix is replaced with "qa".
func UniqueEmail(prefix string) string {
	prefix = sanitizeEmailPrefix(prefix)
	if prefix == "" {
		prefix = defaultEmailPrefix
	}
	return prefix + "." + uuid.NewString() + "@" + emailDomain
}

// UniqueName returns "{base} {token}", where token is an 8-character random hex string. This is
// meant for telling records apart in logs, not as a uniqueness guarantee.
func UniqueName(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = defaultNameBase
	}
	return base + " " + ShortToken()
}

// ShortToken returns the first 8 hex characters of a random UUID.
func ShortToken() string {
	return uuid.NewString()[:shortTokenLength]
}

func sanitizeEmailPrefix(prefix string) string {
	return strings.Map(func(r rune) rune {
		if r == '@' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, prefix)
}
