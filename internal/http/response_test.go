package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func TestWriteErrorResponse(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedKeys   []string
	}{
		{
			name:           "given validation error should return bad request with field errors",
			err:            fmt.Errorf("failed with error=%w", inErrors.NewValidationError(inErrors.FieldError{Field: "phone", Message: "invalid"})),
			expectedStatus: http.StatusBadRequest,
			expectedKeys:   []string{"errors"},
		},
		{
			name:           "given illegal transition should return unprocessable entity with statuses",
			err:            &inErrors.TransitionError{Current: "SHIPPED", Requested: "CANCELLED"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedKeys:   []string{"currentStatus", "requestedStatus"},
		},
		{
			name:           "given conflict should return conflict",
			err:            fmt.Errorf("failed with error=%w", inErrors.ErrTransitionConflict),
			expectedStatus: http.StatusConflict,
			expectedKeys:   []string{"retryable"},
		},
		{
			name:           "given persistence failure should return service unavailable",
			err:            fmt.Errorf("failed with error=%w", inErrors.ErrPersistence),
			expectedStatus: http.StatusServiceUnavailable,
			expectedKeys:   []string{"retryable"},
		},
		{
			name:           "given not found should return not found",
			err:            inErrors.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "given unknown error should return internal server error",
			err:            fmt.Errorf("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			WriteErrorResponse(context.Background(), recorder, tt.err)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, VALUE_HEADER_APPLICATION_JSON, recorder.Header().Get(KEY_HEADER_CONTENT_TYPE))
			body := map[string]interface{}{}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, "failed", body["status"])
			for _, k := range tt.expectedKeys {
				assert.Contains(t, body, k)
			}
		})
	}
}
