package moderation

import "regexp"

// Basic profanity blocklist for family-safe rooms.
var blocklist = []string{
	"damn",
	"hell",
	"ass",
	"shit",
	"fuck",
	"bitch",
	"bastard",
	"crap",
}

// Word-boundary patterns so that substrings inside clean words do not
// trigger rejection ("classic" must pass a blocklist containing "ass").
var blockPatterns = compileBlocklist()

func compileBlocklist() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(blocklist))
	for _, w := range blocklist {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return patterns
}

// ModerateText reports whether text is acceptable under the room's
// family-safe policy. With familySafe false it is a no-op.
func ModerateText(text string, familySafe bool) bool {
	if !familySafe {
		return true
	}
	for _, p := range blockPatterns {
		if p.MatchString(text) {
			return false
		}
	}
	return true
}

// FilterAnswer gates a submitted answer. Returns the text unchanged and
// ok=false when the content is rejected; rejection never mutates state,
// the caller decides how to signal it.
func FilterAnswer(answer string, familySafe bool) (string, bool) {
	if !ModerateText(answer, familySafe) {
		return "", false
	}
	return answer, true
}
