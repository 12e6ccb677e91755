package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ad: North/South", "Ad- North-South"},
		{`a<b>c:d"e/f\g|h?i*j`, "a-b-c-d-e-f-g-h-i-j"},
		{"  padded  ", "padded"},
		{"Émission Été", "Émission Été"},
		{"", ""},
		{"??", "--"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestSanitizeFilename_Properties(t *testing.T) {
	inputs := []string{
		"Ad: North/South",
		` <>:"/\|?* `,
		"Plain Title",
		"tab\tseparated: value",
		"  - leading dash",
		"mixé/ünïcode?",
	}
	for _, in := range inputs {
		once := SanitizeFilename(in)
		assert.Equal(t, once, SanitizeFilename(once), "not idempotent for %q", in)
		assert.False(t, strings.ContainsAny(once, `<>:"/\|?*`), "forbidden character left in %q", once)
	}
}

func TestFilename(t *testing.T) {
	rec := Record{Title: "Big Sale", Number: "4821"}
	assert.Equal(t, "Big Sale - 4821.pdf", Filename("", rec))
	assert.Equal(t, "NA - Big Sale - 4821.pdf", Filename("NA - ", rec))

	rec = Record{Title: NoTitle, Number: NoNumber}
	assert.Equal(t, "RENEG - NoTitle - NoNumber.pdf", Filename("RENEG - ", rec))

	rec = Record{Title: "Ad: North/South", Number: "1"}
	assert.Equal(t, "Ad- North-South - 1.pdf", Filename("", rec))
}
