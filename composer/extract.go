package composer

import "strings"

// Lead-in phrases recognized ahead of a place name, longest first so
// "what's the weather in" wins over "weather in".
var leadIns = []string{
	"what is the weather in",
	"what's the weather in",
	"i would like to visit",
	"show me attractions in",
	"places to visit in",
	"what can i see in",
	"i want to go to",
	"things to do in",
	"i am going to",
	"i'm going to",
	"attractions in",
	"temperature in",
	"forecast for",
	"weather in",
}

// Extract pulls a candidate place name out of free-form input. It never
// fails: input with no recognized lead-in comes back trimmed as-is.
func Extract(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(`"`, "", "`", "").Replace(s)

	lower := strings.ToLower(s)
	for _, phrase := range leadIns {
		if i := strings.Index(lower, phrase); i >= 0 {
			s = s[:i] + s[i+len(phrase):]
			break
		}
	}

	s = strings.TrimSpace(s)
	return strings.TrimRight(s, " ,.!?;:")
}
