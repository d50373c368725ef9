package bluff

import (
	"fmt"
	"math/rand"
	"strings"
)

var stopwords = map[string]bool{
	"what": true, "does": true, "where": true, "when": true, "which": true,
	"describe": true, "mean": true, "about": true,
}

const maxFallbackAttempts = 20

// FallbackAnswer builds a templated bluff from the question's salient
// words when the generation service is unavailable. Retries against the
// existing answers a bounded number of times, then disambiguates with a
// counter.
func FallbackAnswer(question string, existingAnswers []string) string {
	keyWords := extractKeywords(question)

	first := "the subject"
	second := ""
	if len(keyWords) > 0 {
		first = keyWords[0]
	}
	if len(keyWords) > 1 {
		second = keyWords[1]
	}

	templates := []string{
		fmt.Sprintf("something involving %s incorrectly", first),
		fmt.Sprintf("a common misconception about %s", first),
		"what most people think but is actually wrong",
		"the obvious answer that's actually incorrect",
		"a plausible-sounding but fake explanation",
		"what it seems like at first glance",
		"the popular but incorrect theory",
		"a believable alternative explanation",
	}
	if second != "" {
		templates = append(templates,
			fmt.Sprintf("a %s related to %s", first, second),
			fmt.Sprintf("when %s meets %s", first, second))
	}

	for attempt := 0; attempt < maxFallbackAttempts; attempt++ {
		candidate := templates[rand.Intn(len(templates))]
		if !containsFold(existingAnswers, candidate) {
			return candidate
		}
	}

	return fmt.Sprintf("Alternative interpretation %d", len(existingAnswers)+1)
}

func extractKeywords(question string) []string {
	cleaned := strings.NewReplacer("?", "", "'", "", `"`, "").Replace(strings.ToLower(question))

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) > 3 && !stopwords[w] {
			words = append(words, w)
		}
	}
	return words
}

func containsFold(list []string, s string) bool {
	for _, e := range list {
		if strings.EqualFold(e, s) {
			return true
		}
	}
	return false
}
