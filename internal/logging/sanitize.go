// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package logging

import (
	"strings"
	"unicode"
)

// maxLogValueLen bounds values copied from untrusted input into log fields.
const maxLogValueLen = 200

// SanitizeValue makes an untrusted string safe for a log field: control
// characters become spaces and the result is truncated.
func SanitizeValue(s string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return truncateString(clean, maxLogValueLen)
}

// SanitizeSecret masks a secret, keeping only the first and last 2 characters.
func SanitizeSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:2] + "..." + secret[len(secret)-2:]
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// avoid splitting a multi-byte rune
	cut := maxLen
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
