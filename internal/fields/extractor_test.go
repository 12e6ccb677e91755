package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantTitle  string
		wantNumber string
	}{
		{
			name:       "single line title with following field",
			text:       "Title/Titre: Big Sale\nType/Type: Retail\nNumber/Numéro: 4821",
			wantTitle:  "Big Sale",
			wantNumber: "4821",
		},
		{
			name:       "hyphenated wrap joins without space",
			text:       "Title/Titre: Spring-\nSummer Promo\nNumber/Numéro: 99",
			wantTitle:  "Spring-Summer Promo",
			wantNumber: "99",
		},
		{
			name:       "two continuation lines",
			text:       "Header\nTitle/Titre: Winter\nClearance\nEvent\nStill more",
			wantTitle:  "Winter Clearance Event",
			wantNumber: NoNumber,
		},
		{
			name:       "cutoff on same line as title",
			text:       "Title/Titre: Back to School Demo/Group Cible: A25-54\nNumber/Numéro:12",
			wantTitle:  "Back to School",
			wantNumber: "12",
		},
		{
			name:       "blank line does not stop the second continuation",
			text:       "Title/Titre: Holiday\n   \nSpecial\nNumber/Numéro: 7",
			wantTitle:  "Holiday Special",
			wantNumber: "7",
		},
		{
			name:       "continuation truncated at trailing cutoff",
			text:       "Title/Titre: Summer\nNights Product/Produit: Beer\nNumber/Numéro: 3",
			wantTitle:  "Summer Nights",
			wantNumber: "3",
		},
		{
			name:       "label inside a sentence",
			text:       "The Title/Titre: is here",
			wantTitle:  "is here",
			wantNumber: NoNumber,
		},
		{
			name:       "no labels",
			text:       "nothing useful\non this page",
			wantTitle:  NoTitle,
			wantNumber: NoNumber,
		},
		{
			name:       "crlf line breaks",
			text:       "Title/Titre: Fall\r\nLaunch\r\nType/Type: TV\r\nNumber/Numéro: 55",
			wantTitle:  "Fall Launch",
			wantNumber: "55",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Extract(tt.text)
			assert.Equal(t, tt.wantTitle, rec.Title)
			assert.Equal(t, tt.wantNumber, rec.Number)
		})
	}
}

func TestExtractTitle_FirstMatchWins(t *testing.T) {
	lines := []string{
		"Title/Titre: First",
		"Type/Type: X",
		"Coverage/Couverture: Y",
		"Title/Titre: Second",
	}
	assert.Equal(t, "First", ExtractTitle(lines, DefaultCutoffs))
}

func TestExtractTitle_NoLabel(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{""},
		{"title/titre: lower case does not count"},
		{"Title Titre: missing slash", "Number/Numéro: 1"},
	}
	for _, lines := range inputs {
		assert.Equal(t, NoTitle, ExtractTitle(lines, DefaultCutoffs))
	}
}

func TestExtractTitle_DashSeparatorKeepsSpace(t *testing.T) {
	lines := []string{"Title/Titre: Promo -", "Quebec"}
	assert.Equal(t, "Promo - Quebec", ExtractTitle(lines, DefaultCutoffs))
}

func TestExtractTitle_EmptyValueTakesContinuation(t *testing.T) {
	lines := []string{"Title/Titre:", "Big Event", "Type/Type: Radio"}
	assert.Equal(t, "Big Event", ExtractTitle(lines, DefaultCutoffs))
}

func TestExtractTitle_OnlyTwoContinuationLines(t *testing.T) {
	lines := []string{"Title/Titre: A", "B", "C", "D"}
	assert.Equal(t, "A B C", ExtractTitle(lines, DefaultCutoffs))
}

func TestStripAfterLabel(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		cutoffs []string
		want    string
	}{
		{"no cutoff", "  plain text  ", DefaultCutoffs, "plain text"},
		{"cutoff in middle", "ABC Demo/Group Cible: XYZ", DefaultCutoffs, "ABC"},
		{"cutoff at start", "Type/Type: Retail", DefaultCutoffs, ""},
		{
			name:    "declaration order beats position",
			text:    "one B: two A: three",
			cutoffs: []string{"A:", "B:"},
			want:    "one B: two",
		},
		{"empty cutoffs", "x Type/Type: y", nil, "x Type/Type: y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripAfterLabel(tt.text, tt.cutoffs))
		})
	}
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Number/Numéro: 4821", "4821"},
		{"Number/Numéro:4821", "4821"},
		{"prefix Number/Numéro:\n  0042 rest", "0042"},
		{"Number/Numéro: 12ab", "12"},
		{"Number/Numéro: abc", NoNumber},
		{"Number/Numero: 12", NoNumber},
		{"", NoNumber},
		{"Number/Numéro: 1\nNumber/Numéro: 2", "1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractNumber(tt.text), "text %q", tt.text)
	}
}
