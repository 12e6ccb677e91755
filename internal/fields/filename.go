package fields

import "strings"

// filenameReplacer maps the characters Windows refuses in file names to a hyphen.
var filenameReplacer = strings.NewReplacer(
	"<", "-", ">", "-", ":", "-", `"`, "-",
	"/", "-", `\`, "-", "|", "-", "?", "-", "*", "-",
)

// SanitizeFilename replaces every forbidden filename character with a hyphen and trims
// surrounding whitespace. Nothing else is changed.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(filenameReplacer.Replace(name))
}

// Filename builds "<prefix><sanitized title> - <number>.pdf".
func Filename(prefix string, rec Record) string {
	return prefix + SanitizeFilename(rec.Title) + " - " + rec.Number + ".pdf"
}
