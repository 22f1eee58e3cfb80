// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package processor

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMask is the sentinel substituted for a redacted value when no
// replacement is configured.
const DefaultMask = "********"

// DefaultSensitiveKeys returns the built-in vocabulary of field-name
// substrings that mark a field as sensitive. The list is deliberately
// permissive; over-redaction is preferred to leaking a secret.
func DefaultSensitiveKeys() []string {
	return []string{
		"password",
		"passwd",
		"secret",
		"api_key",
		"apikey",
		"access_token",
		"auth",
		"credentials",
		"sentry_dsn",
		"token",
		"session",
		"csrf",
		"private_key",
		"privatekey",
	}
}

// KeyMatcher decides whether a field name looks sensitive. Vocabulary
// entries are normalized once at construction; Matches is then a pure
// substring check against the normalized field name.
type KeyMatcher struct {
	fields []string
}

// NewKeyMatcher normalizes and deduplicates the vocabulary. Entries that
// normalize to the empty string are ignored.
func NewKeyMatcher(keys []string) *KeyMatcher {
	fields := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		n := normalizeKey(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		fields = append(fields, n)
	}
	return &KeyMatcher{fields: fields}
}

// Matches reports whether key contains any vocabulary entry after
// normalization. Both "apiKey" and "api_key" normalize to "apikey", so
// separator and case differences never cause a miss.
func (m *KeyMatcher) Matches(key string) bool {
	n := normalizeKey(key)
	if n == "" {
		return false
	}
	for _, f := range m.fields {
		if strings.Contains(n, f) {
			return true
		}
	}
	return false
}

// normalizeKey lower-cases key and strips every rune that is not an ASCII
// letter or digit.
func normalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			b.WriteRune(r)
		case 'A' <= r && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// ValueMatcher decides whether a field value looks sensitive regardless of
// its name. The built-in check covers credit-card-shaped digit strings;
// additional shapes can be supplied as regular expressions, compiled once
// at construction.
type ValueMatcher struct {
	patterns []*regexp.Regexp
}

// NewValueMatcher compiles the extra value patterns. An invalid pattern is
// a construction error; nothing is matched lazily.
func NewValueMatcher(patterns []string) (*ValueMatcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("could not compile value pattern, matcher=%s, err=%s", p, err)
		}
		compiled = append(compiled, re)
	}
	return &ValueMatcher{patterns: compiled}, nil
}

// Matches reports whether value is card-shaped or matches any configured
// value pattern.
func (m *ValueMatcher) Matches(value string) bool {
	if looksLikeCardNumber(value) {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// looksLikeCardNumber reports whether value reduces to 15 or 16 digits once
// every non-digit rune is stripped. 16 covers standard card numbers, 15
// covers AMEX.
func looksLikeCardNumber(value string) bool {
	digits := 0
	for _, r := range value {
		if '0' <= r && r <= '9' {
			digits++
			if digits > 16 {
				return false
			}
		}
	}
	return digits == 15 || digits == 16
}
