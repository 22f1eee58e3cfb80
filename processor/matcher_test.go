// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMatcher_Matches(t *testing.T) {
	tcs := []struct {
		name   string
		key    string
		expect bool
	}{
		{
			name:   "exact vocabulary entry",
			key:    "password",
			expect: true,
		},
		{
			name:   "substring with underscores",
			key:    "the_secret",
			expect: true,
		},
		{
			name:   "substring in the middle",
			key:    "a_password_here",
			expect: true,
		},
		{
			name:   "separated form",
			key:    "api_key",
			expect: true,
		},
		{
			name:   "camelCase form",
			key:    "apiKey",
			expect: true,
		},
		{
			name:   "upper case with dash",
			key:    "API-KEY",
			expect: true,
		},
		{
			name:   "auth header",
			key:    "Authorization",
			expect: true,
		},
		{
			name:   "plain key",
			key:    "foo",
			expect: false,
		},
		{
			name:   "username is not sensitive",
			key:    "username",
			expect: false,
		},
		{
			name:   "empty key",
			key:    "",
			expect: false,
		},
	}

	m := NewKeyMatcher(DefaultSensitiveKeys())
	for _, tc := range tcs {
		assert.Equal(t, tc.expect, m.Matches(tc.key), tc.name)
	}
}

func TestKeyMatcher_ExtendedVocabulary(t *testing.T) {
	m := NewKeyMatcher(append(DefaultSensitiveKeys(), "vault_token"))
	assert.True(t, m.Matches("vaultToken"))
	assert.True(t, m.Matches("password"))
}

func TestNewValueMatcher_BadPattern(t *testing.T) {
	_, err := NewValueMatcher([]string{"[unclosed"})
	assert.Error(t, err)
}

func TestValueMatcher_Matches(t *testing.T) {
	tcs := []struct {
		name   string
		value  string
		expect bool
	}{
		{
			name:   "16 digit card",
			value:  "4242424242424242",
			expect: true,
		},
		{
			name:   "15 digit card",
			value:  "424242424242424",
			expect: true,
		},
		{
			name:   "card with dashes",
			value:  "4242-4242-4242-4242",
			expect: true,
		},
		{
			name:   "card with spaces",
			value:  "4242 4242 4242 4242",
			expect: true,
		},
		{
			name:   "8 digits is not a card",
			value:  "42424242",
			expect: false,
		},
		{
			name:   "17 digits is not a card",
			value:  "42424242424242424",
			expect: false,
		},
		{
			name:   "empty value",
			value:  "",
			expect: false,
		},
		{
			name:   "plain string",
			value:  "bar",
			expect: false,
		},
	}

	m, err := NewValueMatcher(nil)
	require.NoError(t, err)
	for _, tc := range tcs {
		assert.Equal(t, tc.expect, m.Matches(tc.value), tc.name)
	}
}

func TestValueMatcher_ExtraPatterns(t *testing.T) {
	m, err := NewValueMatcher([]string{"^[0-9a-f]{40}$"})
	require.NoError(t, err)

	assert.True(t, m.Matches("da39a3ee5e6b4b0d3255bfef95601890afd80709"), "pattern-matched value")
	assert.True(t, m.Matches("4242424242424242"), "card check still applies")
	assert.False(t, m.Matches("hello"))
}
