package explain

import "strings"

const fallbackIntro = "No stored explanation matches this message yet."

var fallbackSuggestions = []string{
	"Read the first line of the message slowly; the name or symbol it mentions is usually the culprit.",
	"Look at the exact line the diagnostic points to, then at the line just above it.",
	"Search the web for the message together with your language's name.",
	"Cut the failing code down until the message disappears, then rebuild it piece by piece.",
}

// Fallback builds the generic explanation used when no rule matches.
// The original message is echoed back verbatim, with no truncation and
// no escaping, so the user always sees exactly what was being explained.
func Fallback(message string) string {
	var b strings.Builder
	b.WriteString(fallbackIntro)
	b.WriteString("\n\n> ")
	b.WriteString(message)
	b.WriteString("\n\nA few things that usually help:\n")
	for _, suggestion := range fallbackSuggestions {
		b.WriteString("- ")
		b.WriteString(suggestion)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
