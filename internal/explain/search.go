package explain

import (
	"net/url"
	"strings"
)

const searchBase = "https://www.google.com/search?q="

// SearchURL builds a web search link for a diagnostic message.
// The query is the language identifier and the raw message joined by a
// space, percent-encoded for safe embedding (spaces become %20).
func SearchURL(languageID, message string) string {
	return searchBase + percentEncode(languageID+" "+message)
}

// percentEncode escapes s the way browsers escape query components.
// url.QueryEscape использует '+', поэтому пробелы заменяем отдельно.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
