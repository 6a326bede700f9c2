// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ParseLimit reads a ?limit= query value. Missing, malformed or negative
// values yield 0, which services treat as "use the default"; clamping to a
// maximum is left to the service.
//
//	utils.ParseLimit("12")  // 12
//	utils.ParseLimit(" 3 ") // 3
//	utils.ParseLimit("abc") // 0
func ParseLimit(s string) int {
	n := AtoiDefault(strings.TrimSpace(s), 0)
	if n < 0 {
		return 0
	}
	return n
}
