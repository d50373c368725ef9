package bluff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackAnswerNeverEmpty(t *testing.T) {
	answer := FallbackAnswer("What does the word 'serendipity' mean?", nil)
	assert.NotEmpty(t, answer)
}

func TestFallbackAnswerAvoidsExisting(t *testing.T) {
	question := "Where was the fortune cookie invented?"

	existing := []string{}
	for i := 0; i < 15; i++ {
		answer := FallbackAnswer(question, existing)
		assert.NotEmpty(t, answer)
		for _, prior := range existing {
			assert.False(t, strings.EqualFold(prior, answer))
		}
		existing = append(existing, answer)
	}
}

func TestExtractKeywordsDropsStopwords(t *testing.T) {
	words := extractKeywords("What does the word 'flummox' mean?")
	assert.Contains(t, words, "word")
	assert.Contains(t, words, "flummox")
	assert.NotContains(t, words, "what")
	assert.NotContains(t, words, "does")
	assert.NotContains(t, words, "the") // too short
}

func TestCleanAnswer(t *testing.T) {
	assert.Equal(t, "a bluff", CleanAnswer(`  "a bluff"  `))
	assert.Equal(t, "a bluff", CleanAnswer("'a bluff'"))

	long := strings.Repeat("x", 150)
	assert.Len(t, CleanAnswer(long), 100)
}
