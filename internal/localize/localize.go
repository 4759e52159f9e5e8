// Package localize holds the single fallback rule used wherever a localized
// field (product, category or order item name/description) is displayed.
package localize

import (
	"strings"
)

type Language string

const (
	// English values live in the primary column, Hebrew in the secondary one.
	English Language = "en"
	Hebrew  Language = "he"

	Default = English
)

// ParseLanguage maps a lang query value or an Accept-Language header to a
// supported language, falling back to Default.
func ParseLanguage(s string) Language {
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		tag = strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		switch Language(tag) {
		case English:
			return English
		case Hebrew, "iw":
			return Hebrew
		}
	}
	return Default
}

// Resolve returns the first non-empty value of: the value in the requested
// language, the value in the other language, the legacy value. It returns ""
// when all three are empty.
func Resolve(lang Language, primary, secondary, legacy string) string {
	requested, other := primary, secondary
	if lang == Hebrew {
		requested, other = secondary, primary
	}
	for _, v := range [...]string{requested, other, legacy} {
		if v != "" {
			return v
		}
	}
	return ""
}

// Text is one localizable field: primary (en), secondary (he) and the untyped
// legacy value kept from before the field was localized.
type Text struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Legacy    string `json:"legacy"`
}

func (t Text) Resolve(lang Language) string {
	return Resolve(lang, t.Primary, t.Secondary, t.Legacy)
}

// FromNullable builds a Text from nullable database columns.
func FromNullable(primary, secondary, legacy *string) Text {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return Text{Primary: deref(primary), Secondary: deref(secondary), Legacy: deref(legacy)}
}
