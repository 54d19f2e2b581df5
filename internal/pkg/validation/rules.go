package validation

import (
	"errors"
	"regexp"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation"
)

// Validation rule patterns
var (
	// Clock time pattern, 24h HH:MM
	TimeOfDayPattern = `^([01]\d|2[0-3]):[0-5]\d$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	TimeOfDay *regexp.Regexp
}{
	TimeOfDay: regexp.MustCompile(TimeOfDayPattern),
}

// TimeOfDay accepts an empty value or a 24h HH:MM clock time
var TimeOfDay = ozzo.Match(CompiledPatterns.TimeOfDay).Error("must be a time in HH:MM format")

// NotBlank rejects values made only of whitespace. Empty and nil values are left to Required.
var NotBlank = ozzo.By(func(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// OneOf is ozzo's In rule over a set of string enum values
func OneOf[T ~string](values ...T) ozzo.Rule {
	elements := make([]interface{}, 0, len(values))
	for _, v := range values {
		elements = append(elements, string(v))
	}
	return ozzo.In(elements...)
}
