package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type color string

func TestTimeOfDay(t *testing.T) {
	for _, ok := range []string{"", "00:00", "09:30", "23:59"} {
		assert.NoError(t, TimeOfDay.Validate(ok), ok)
	}
	for _, bad := range []string{"24:00", "9:30", "12:60", "noon", "12:00pm"} {
		assert.Error(t, TimeOfDay.Validate(bad), bad)
	}
}

func TestNotBlank(t *testing.T) {
	blank := "   "
	name := " Go Club "
	assert.NoError(t, NotBlank.Validate(""))
	assert.NoError(t, NotBlank.Validate((*string)(nil)))
	assert.NoError(t, NotBlank.Validate(name))
	assert.Error(t, NotBlank.Validate(blank))
	assert.Error(t, NotBlank.Validate(&blank))
}

func TestOneOf(t *testing.T) {
	rule := OneOf(color("red"), color("green"))
	assert.NoError(t, rule.Validate("red"))
	assert.NoError(t, rule.Validate(""))
	assert.Error(t, rule.Validate("blue"))
}
