package ui

import (
	"strconv"
	"strings"
)

// ValidIPv4 reports whether text is a dotted quad of four 0-255 decimal
// segments without leading zeros (a lone "0" is fine).
func ValidIPv4(text string) bool {
	parts := strings.Split(text, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
		if len(part) > 1 && part[0] == '0' {
			return false
		}
		v, err := strconv.Atoi(part)
		if err != nil || v > 255 {
			return false
		}
	}
	return true
}

// acceptIPKey reports whether key may be appended to buffer while typing an
// address.
func acceptIPKey(buffer, key string) bool {
	if key == "." {
		if buffer == "" || strings.HasSuffix(buffer, ".") {
			return false
		}
		return strings.Count(buffer, ".") < 3
	}
	segment := buffer
	if i := strings.LastIndexByte(buffer, '.'); i >= 0 {
		segment = buffer[i+1:]
	}
	segment += key
	if len(segment) > 3 {
		return false
	}
	v, err := strconv.Atoi(segment)
	return err == nil && v <= 255
}
