package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModerateTextWordBoundaries(t *testing.T) {
	cases := []struct {
		name string
		text string
		ok   bool
	}{
		// Substrings inside clean words must not trigger.
		{"substring in clean word", "classic", true},
		{"substring at word start", "assassin", true},
		{"substring mid-sentence", "a hellenic statue", true},
		{"whole word", "what an ass", false},
		{"case insensitive", "ASS", false},
		{"word followed by punctuation", "well damn, that one", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, ModerateText(tc.text, true))
		})
	}
}

func TestModerateTextDisabled(t *testing.T) {
	assert.True(t, ModerateText("what an ass", false))
}

func TestFilterAnswer(t *testing.T) {
	text, ok := FilterAnswer("a perfectly fine answer", true)
	assert.True(t, ok)
	assert.Equal(t, "a perfectly fine answer", text)

	text, ok = FilterAnswer("what an ass", true)
	assert.False(t, ok)
	assert.Empty(t, text)

	text, ok = FilterAnswer("what an ass", false)
	assert.True(t, ok)
	assert.Equal(t, "what an ass", text)
}
