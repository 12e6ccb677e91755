// Package fields extracts labelled values from the plain text of a PDF page.
package fields

import (
	"regexp"
	"strings"
)

const (
	// TitleLabel marks the start of the title field.
	TitleLabel = "Title/Titre:"
	// NumberLabel marks the start of the number field.
	NumberLabel = "Number/Numéro:"

	// NoTitle is returned when the page has no title field.
	NoTitle = "NoTitle"
	// NoNumber is returned when the page has no number field.
	NoNumber = "NoNumber"

	// continuationLines is how many lines after the title line may extend the title.
	continuationLines = 2
)

// DefaultCutoffs lists the labels that open the field following the title.
// Order matters: StripAfterLabel cuts at the first label of this list found in a line,
// not at the leftmost one.
var DefaultCutoffs = []string{
	"Type/Type:",
	"Coverage/Couverture:",
	"Product/Produit:",
	"Demo/Group Cible:",
	"Advertiser/Annonceur:",
	"Contact Name/Nom du contact:",
	"Revenue Type/Type de revenu:",
	"Sec. Demo/Cible secondaire:",
	NumberLabel,
}

var numberPattern = regexp.MustCompile(`Number/Numéro:\s*(\d+)`)

// Record holds the fields read from one page.
type Record struct {
	Title  string `json:"title"`
	Number string `json:"number"`
}

// Extract reads the title and number from the full text of a page using DefaultCutoffs.
func Extract(text string) Record {
	return Record{
		Title:  ExtractTitle(SplitLines(text), DefaultCutoffs),
		Number: ExtractNumber(text),
	}
}

// SplitLines splits page text on \n, \r\n and \r line breaks.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// StripAfterLabel truncates text before the first cutoff label, taken in list order, that
// occurs anywhere in it. The result is trimmed of surrounding whitespace.
func StripAfterLabel(text string, cutoffs []string) string {
	for _, cutoff := range cutoffs {
		if idx := strings.Index(text, cutoff); idx >= 0 {
			return strings.TrimSpace(text[:idx])
		}
	}
	return strings.TrimSpace(text)
}

// ExtractTitle finds the first line containing TitleLabel and returns the text after it,
// extended with up to two continuation lines. Continuation lines are cut at cutoff labels
// and skipped when nothing is left of them. Returns NoTitle when no line has the label.
func ExtractTitle(lines []string, cutoffs []string) string {
	for i, line := range lines {
		idx := strings.Index(line, TitleLabel)
		if idx < 0 {
			continue
		}

		title := StripAfterLabel(strings.TrimSpace(line[idx+len(TitleLabel):]), cutoffs)
		for j := i + 1; j <= i+continuationLines && j < len(lines); j++ {
			next := StripAfterLabel(strings.TrimSpace(lines[j]), cutoffs)
			if next == "" || hasLabelPrefix(next, cutoffs) {
				continue
			}
			title = joinContinuation(title, next)
		}
		return strings.TrimSpace(title)
	}
	return NoTitle
}

// joinContinuation appends next to title. A word broken by a trailing hyphen is joined
// directly; a dash standing alone (" -") keeps its spacing.
func joinContinuation(title, next string) string {
	if strings.HasSuffix(title, "-") && !strings.HasSuffix(title, " -") {
		return title + next
	}
	return title + " " + next
}

func hasLabelPrefix(s string, labels []string) bool {
	for _, label := range labels {
		if strings.HasPrefix(s, label) {
			return true
		}
	}
	return false
}

// ExtractNumber returns the digits following "Number/Numéro:" anywhere in text,
// or NoNumber when the pattern does not occur.
func ExtractNumber(text string) string {
	m := numberPattern.FindStringSubmatch(text)
	if m == nil {
		return NoNumber
	}
	return strings.TrimSpace(m[1])
}
