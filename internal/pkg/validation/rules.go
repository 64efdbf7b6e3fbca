// Package validation registers the custom binding tags used by request DTOs.
package validation

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Rule patterns
var (
	// DatePattern is YYYY-MM-DD
	DatePattern = `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`
	// ClockPattern is a 24h HH:MM time
	ClockPattern = `^([01]\d|2[0-3]):[0-5]\d$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Date  *regexp.Regexp
	Clock *regexp.Regexp
}{
	Date:  regexp.MustCompile(DatePattern),
	Clock: regexp.MustCompile(ClockPattern),
}

// Allowed values for enum-like fields
var (
	AttendanceStatuses = []string{"present", "absent", "half_day", "leave", "holiday"}
	WorkLocations      = []string{"office", "remote", "client_site"}
)

var registerOnce sync.Once

// Register adds the custom tags to gin's validator engine. Safe to call more
// than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn adds the custom tags to v
func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"date":     patternRule(CompiledPatterns.Date),
		"clock":    patternRule(CompiledPatterns.Clock),
		"password": passwordRule,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func patternRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		// empty optional values are left to `required`
		return value == "" || re.MatchString(value)
	}
}

// passwordRule requires at least one letter and one digit
func passwordRule(fl validator.FieldLevel) bool {
	var letter, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		}
	}
	return letter && digit
}
