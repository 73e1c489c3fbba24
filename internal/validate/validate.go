// Package validate holds the pure input predicates consumed by the
// conversational handlers. Nothing here touches state or I/O.
package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	maxMessageLength = 1000

	// Sane limits for warehouse rooms
	MinTemperature = -50.0
	MaxTemperature = 100.0
)

// Reasons a numeric pair is rejected. The handler maps them to user guidance.
var (
	ErrPairFormat     = errors.New("expected two values: min max")
	ErrPairNotNumbers = errors.New("values must be numbers")
	ErrPairOrder      = errors.New("min must be below max")
	ErrPairRange      = errors.New("values outside allowed range")
)

var (
	nameWordRe = regexp.MustCompile(`^[А-Яа-яЁёA-Za-z'-]+$`)
	deviceIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	groupRe    = regexp.MustCompile(`^[a-zA-Z0-9\s_-]+$`)
)

// ParseTempPair parses a "min max" message into a threshold pair
func ParseTempPair(text string) (min, max float64, err error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) != 2 {
		return 0, 0, ErrPairFormat
	}

	min, errMin := strconv.ParseFloat(strings.ReplaceAll(parts[0], ",", "."), 64)
	max, errMax := strconv.ParseFloat(strings.ReplaceAll(parts[1], ",", "."), 64)
	if errMin != nil || errMax != nil {
		return 0, 0, ErrPairNotNumbers
	}

	if min >= max {
		return 0, 0, ErrPairOrder
	}
	if min < MinTemperature || max > MaxTemperature {
		return 0, 0, ErrPairRange
	}

	return min, max, nil
}

// FullName checks a registration name: 3-5 words, each 2-15 letters
// (hyphens and apostrophes allowed), each starting with an uppercase letter.
func FullName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 5 || len(name) > 100 {
		return false
	}

	words := strings.Fields(name)
	if len(words) < 3 || len(words) > 5 {
		return false
	}

	for _, word := range words {
		runes := []rune(word)
		if len(runes) < 2 || len(runes) > 15 {
			return false
		}
		if !nameWordRe.MatchString(word) {
			return false
		}
		if !unicode.IsUpper(runes[0]) {
			return false
		}
	}
	return true
}

// Position checks a registration position: at least two characters
func Position(position string) bool {
	return len([]rune(strings.TrimSpace(position))) >= 2
}

// DeviceID checks a sensor identifier format
func DeviceID(id string) bool {
	return len(id) >= 1 && len(id) <= 50 && deviceIDRe.MatchString(id)
}

// GroupName checks a warehouse group name format
func GroupName(group string) bool {
	runes := []rune(group)
	return len(runes) >= 1 && len(runes) <= 30 && groupRe.MatchString(group)
}

// UserInput rejects empty, oversized or obviously hostile text before any
// further processing.
func UserInput(text string) bool {
	if len(text) > maxMessageLength {
		return false
	}
	if strings.TrimSpace(text) == "" {
		return false
	}
	return !strings.ContainsAny(text, "<>&\"';|`$")
}
