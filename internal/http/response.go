package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Add(KEY_HEADER_CONTENT_TYPE, VALUE_HEADER_APPLICATION_JSON)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"].(int); ok {
		w.WriteHeader(v)
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// WriteErrorResponse maps err onto the failure envelope. Known error kinds get
// their own status code and extra fields so callers can tell a bad request
// from a conflict or a retryable failure.
func WriteErrorResponse(c context.Context, w http.ResponseWriter, err error) {
	body := map[string]interface{}{
		"status":     "failed",
		"statusCode": http.StatusInternalServerError,
		"message":    err.Error(),
	}

	var validationErr *inErrors.ValidationError
	var transitionErr *inErrors.TransitionError
	switch {
	case errors.As(err, &validationErr):
		body["statusCode"] = http.StatusBadRequest
		body["errors"] = validationErr.Fields
	case errors.Is(err, inErrors.ErrValidation):
		body["statusCode"] = http.StatusBadRequest
	case errors.As(err, &transitionErr):
		body["statusCode"] = http.StatusUnprocessableEntity
		body["currentStatus"] = transitionErr.Current
		body["requestedStatus"] = transitionErr.Requested
	case errors.Is(err, inErrors.ErrTransitionConflict):
		body["statusCode"] = http.StatusConflict
		body["retryable"] = true
	case errors.Is(err, inErrors.ErrPersistence):
		body["statusCode"] = http.StatusServiceUnavailable
		body["retryable"] = true
	case errors.Is(err, inErrors.ErrOrderNotFound), errors.Is(err, inErrors.ErrProductNotFound):
		body["statusCode"] = http.StatusNotFound
	case errors.Is(err, inErrors.ErrEmptyAuth), errors.Is(err, inErrors.ErrTokenInvalid), errors.Is(err, inErrors.ErrEmptySubject):
		body["statusCode"] = http.StatusUnauthorized
	case errors.Is(err, inErrors.ErrForbidden):
		body["statusCode"] = http.StatusForbidden
	}

	WriteJsonResponse(c, w, map[string]string{}, body)
}
