package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/otel"
)

func bearerToken(r *http.Request) string {
	authorization := r.Header.Get(inHttp.KEY_HEADER_AUTHORIZATION)
	if len(authorization) < len("bearer ") || !strings.EqualFold(authorization[:len("bearer ")], "bearer ") {
		return ""
	}
	return strings.TrimSpace(authorization[len("bearer "):])
}

// Auth rejects requests without a valid bearer token and attaches the
// verified claims to the request context.
func Auth(secretKey string) mux.MiddlewareFunc {
	return authenticate(secretKey, true)
}

// OptionalAuth attaches claims when a valid bearer token is present and lets
// guests through untouched. A present but invalid token is still rejected.
func OptionalAuth(secretKey string) mux.MiddlewareFunc {
	return authenticate(secretKey, false)
}

func authenticate(secretKey string, required bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, span := otel.Tracer.Start(r.Context(), "middleware Auth")
			defer span.End()

			logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "middleware Auth").Logger()
			c = logger.WithContext(c)

			token := bearerToken(r)
			if token == "" {
				if !required {
					logger.Trace().Msg("no bearer token, continuing as guest")
					next.ServeHTTP(w, r)
					return
				}
				err := inErrors.ErrEmptyAuth
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, err)
				return
			}

			claims, err := internal.VerifyToken(c, token, secretKey)
			if err != nil {
				err = fmt.Errorf("failed verifying token with error=%w", err)
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(internal.AttachClaims(r.Context(), claims)))
		})
	}
}

// AdminOnly must run after Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()
		logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "middleware AdminOnly").Logger()

		claims, ok := internal.ClaimsFromContext(c)
		if !ok || !claims.IsAdmin() {
			err := inErrors.ErrForbidden
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteErrorResponse(c, w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
