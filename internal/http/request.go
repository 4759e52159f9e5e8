package http

import (
	"net/http"

	"github.com/Alturino/storefront/internal/localize"
)

// Language picks the display language from the lang query parameter, falling
// back to the Accept-Language header.
func Language(r *http.Request) localize.Language {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return localize.ParseLanguage(lang)
	}
	return localize.ParseLanguage(r.Header.Get(KEY_HEADER_ACCEPT_LANGUAGE))
}
