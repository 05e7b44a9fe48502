package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardAllows(t *testing.T) {
	tests := []struct {
		name   string
		folded string
		want   bool
	}{
		{name: "no duration phrase", folded: "tradr 2x short tsla daily etf", want: true},
		{name: "municipal", folded: "allspring ultra short municipal etf", want: false},
		{name: "short-term treasury", folded: "ishares short-term treasury bond etf", want: false},
		{name: "short duration", folded: "short duration income fund", want: false},
		{name: "money market", folded: "short money market fund", want: false},
		{name: "bear outside the phrase", folded: "short-term treasury bear 3x shares", want: true},
		{name: "negative multiplier outside the phrase", folded: "short duration -1x fund", want: true},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.guardAllows(tt.folded))
		})
	}
}

func TestGuardedInverse(t *testing.T) {
	c := Default()

	assert.True(t, c.guardedInverse("proshares short s&p500"))
	assert.True(t, c.guardedInverse("direxion daily s&p 500 bear 3x shares"))
	assert.False(t, c.guardedInverse("jpmorgan ultra-short municipal income"))
	assert.False(t, c.guardedInverse("proshares ultra s&p500"))
}

func TestMask(t *testing.T) {
	got := mask("ab short-term cd", Default().t.durationExclusion.Hits("ab short-term cd"))
	assert.Equal(t, "ab"+strings.Repeat(" ", 12)+"cd", got)
}
