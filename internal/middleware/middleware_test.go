package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal"
	"github.com/Alturino/storefront/internal/constants"
	inHttp "github.com/Alturino/storefront/internal/http"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := internal.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.APP_USER_SERVICE,
			Subject:   uuid.NewString(),
			Audience:  jwt.ClaimStrings{constants.AUDIENCE_USER},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Role: role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name           string
		middleware     func(http.Handler) http.Handler
		authorization  string
		expectedStatus int
		expectedCalled bool
	}{
		{
			name:           "given required auth without token should return unauthorized",
			middleware:     Auth(testSecret),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "given optional auth without token should continue as guest",
			middleware:     OptionalAuth(testSecret),
			expectedStatus: http.StatusOK,
			expectedCalled: true,
		},
		{
			name:           "given optional auth with garbage token should return unauthorized",
			middleware:     OptionalAuth(testSecret),
			authorization:  "Bearer garbage",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "given admin only with user token should return forbidden",
			middleware:     func(h http.Handler) http.Handler { return Auth(testSecret)(AdminOnly(h)) },
			authorization:  "Bearer " + signToken(t, ""),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "given admin only with admin token should continue",
			middleware:     func(h http.Handler) http.Handler { return Auth(testSecret)(AdminOnly(h)) },
			authorization:  "bearer " + signToken(t, constants.ROLE_ADMIN),
			expectedStatus: http.StatusOK,
			expectedCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.authorization != "" {
				req.Header.Set(inHttp.KEY_HEADER_AUTHORIZATION, tt.authorization)
			}
			recorder := httptest.NewRecorder()

			tt.middleware(okHandler(&called)).ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, tt.expectedCalled, called)
		})
	}
}

func TestLoggingKeepsRequestBody(t *testing.T) {
	body := `{"customerForm":{"email":"dana@example.com","phone":"0501234567"},"items":[]}`
	var received string
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, r.Body)
		received = buf.String()
	}))

	req := httptest.NewRequest(http.MethodPost, "/orders/checkout", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.JSONEq(t, body, received)
	assert.NotEmpty(t, recorder.Header().Get(inHttp.KEY_HEADER_REQUEST_ID))
}

func TestLoggingKeepsStatusAndRequestId(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/carts/abc", nil)
	req.Header.Set(inHttp.KEY_HEADER_REQUEST_ID, "request-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.Equal(t, "request-1", recorder.Header().Get(inHttp.KEY_HEADER_REQUEST_ID))
}

func TestMaskBody(t *testing.T) {
	body := map[string]interface{}{
		"password": "secret",
		"customerForm": map[string]interface{}{
			"email":     "dana@example.com",
			"firstName": "Dana",
		},
	}

	maskBody(body)

	assert.Equal(t, "****", body["password"])
	form := body["customerForm"].(map[string]interface{})
	assert.Equal(t, "****", form["email"])
	assert.Equal(t, "Dana", form["firstName"])
}
