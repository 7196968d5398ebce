package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/pkg/apperror"
)

const (
	MaxDescriptionLength = 5000
	MaxLocationLength    = 200
	MaxTokenLength       = 32
)

// Required trims value and returns a validation error with key when it is empty.
func Required(value, key string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperror.Validation(key)
	}
	return value, nil
}

// Text is Required plus a maximum length in runes; longer values fail with
// the too-long key.
func Text(value, key string, max int) (string, error) {
	value, err := Required(value, key)
	if err != nil {
		return "", err
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		return "", apperror.Validation(i18n.KeyTextTooLong)
	}
	return value, nil
}

// Optional trims value and caps its length; an empty result is nil.
func Optional(value string, max int) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		value = string([]rune(value)[:max])
	}
	return &value
}

// ParseLocalizedNumber reads "125,70", "125.70" and "1.234,56". When both
// separators appear, dots are thousands separators and the comma is decimal.
func ParseLocalizedNumber(input string) (float64, bool) {
	value := strings.TrimSpace(input)
	if value == "" {
		return 0, false
	}

	if strings.Contains(value, ",") && strings.Contains(value, ".") {
		value = strings.ReplaceAll(value, ".", "")
	}
	value = strings.Replace(value, ",", ".", 1)

	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n != n || n > 1e15 || n < -1e15 {
		return 0, false
	}
	return n, true
}

// PositiveNumber parses a localized number that must be greater than zero.
func PositiveNumber(input, key string) (float64, error) {
	n, ok := ParseLocalizedNumber(input)
	if !ok || n <= 0 {
		return 0, apperror.Validation(key)
	}
	return n, nil
}

// NonNegativeNumber parses a localized number that must be zero or more.
func NonNegativeNumber(input, key string) (float64, error) {
	n, ok := ParseLocalizedNumber(input)
	if !ok || n < 0 {
		return 0, apperror.Validation(key)
	}
	return n, nil
}

// OneOf returns value when it is in allowed, fallback when value is empty.
func OneOf(value, fallback, key string, allowed ...string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", apperror.Validation(key)
}

// Language validates a language code from the picker.
func Language(code string) (i18n.Lang, error) {
	lang, ok := i18n.Parse(code)
	if !ok {
		return "", apperror.Validation(i18n.KeyLanguageInvalid)
	}
	return lang, nil
}
