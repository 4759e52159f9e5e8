package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alturino/storefront/internal/localize"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		expected       localize.Language
	}{
		{name: "given lang query should use it", target: "/orders/1?lang=he", expected: localize.Hebrew},
		{name: "given lang query should win over header", target: "/orders/1?lang=en", acceptLanguage: "he-IL", expected: localize.English},
		{name: "given only header should use header", target: "/orders/1", acceptLanguage: "he-IL,he;q=0.9", expected: localize.Hebrew},
		{name: "given nothing should use default", target: "/orders/1", expected: localize.Default},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			if tt.acceptLanguage != "" {
				r.Header.Set(KEY_HEADER_ACCEPT_LANGUAGE, tt.acceptLanguage)
			}
			assert.Equal(t, tt.expected, Language(r))
		})
	}
}
