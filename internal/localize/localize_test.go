package localize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		lang      Language
		primary   string
		secondary string
		legacy    string
		expected  string
	}{
		{
			name:     "given hebrew requested and missing should fall back to english",
			lang:     Hebrew,
			primary:  "Ring",
			legacy:   "Ring (legacy)",
			expected: "Ring",
		},
		{
			name:     "given both languages missing should return legacy",
			lang:     Hebrew,
			legacy:   "Ring (legacy)",
			expected: "Ring (legacy)",
		},
		{
			name:      "given hebrew requested and present should return hebrew",
			lang:      Hebrew,
			primary:   "Ring",
			secondary: "טבעת",
			legacy:    "Ring (legacy)",
			expected:  "טבעת",
		},
		{
			name:      "given english requested and present should return english",
			lang:      English,
			primary:   "Ring",
			secondary: "טבעת",
			expected:  "Ring",
		},
		{
			name:      "given english requested and missing should fall back to hebrew",
			lang:      English,
			secondary: "טבעת",
			legacy:    "Ring (legacy)",
			expected:  "טבעת",
		},
		{
			name:     "given nothing should return empty string",
			lang:     English,
			expected: "",
		},
		{
			name:      "given unknown language should behave like english",
			lang:      Language("fr"),
			primary:   "Ring",
			secondary: "טבעת",
			expected:  "Ring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Resolve(tt.lang, tt.primary, tt.secondary, tt.legacy)
			assert.Equal(t, tt.expected, actual)

			text := Text{Primary: tt.primary, Secondary: tt.secondary, Legacy: tt.legacy}
			assert.Equal(t, tt.expected, text.Resolve(tt.lang), "Text.Resolve should match Resolve")
		})
	}
}

func TestFromNullable(t *testing.T) {
	legacy := "Ring (legacy)"
	text := FromNullable(nil, nil, &legacy)
	assert.Equal(t, "Ring (legacy)", text.Resolve(Hebrew))
}

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"":                English,
		"he":              Hebrew,
		"he-IL":           Hebrew,
		"iw":              Hebrew,
		"en-US,en;q=0.9":  English,
		"fr-FR, he;q=0.8": Hebrew,
		"de":              English,
		" HE-il ; q=1":    Hebrew,
	}
	for input, expected := range tests {
		assert.Equal(t, expected, ParseLanguage(input), "input=%q", input)
	}
}
