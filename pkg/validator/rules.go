package validator

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

// Required rejects values that are empty after trimming.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: field + " is required"},
	}
}

// RequiredWithMessage is Required with a caller-supplied message.
func RequiredWithMessage(field, value, message string) Rule {
	r := Required(field, value)
	r.Error.Message = message
	return r
}

// AnyRequired passes when at least one of values is non-blank. The error is
// reported under field.
func AnyRequired(field, message string, values ...string) Rule {
	return Rule{
		Check: func() bool {
			return slices.ContainsFunc(values, func(v string) bool {
				return strings.TrimSpace(v) != ""
			})
		},
		Error: ValidationError{Field: field, Message: message},
	}
}

// MaxLen bounds the rune length of value.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, max)},
	}
}

// ValidEmail accepts a bare address; empty values pass.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Error: ValidationError{Field: field, Message: field + " must be a valid email address"},
	}
}

// OneOf restricts value to the allowed set.
func OneOf(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))},
	}
}
