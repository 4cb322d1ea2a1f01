package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		code           string
		expectedStatus int
	}{
		{code: ErrInvalidAccountID, expectedStatus: http.StatusBadRequest},
		{code: ErrReviewNotFound, expectedStatus: http.StatusNotFound},
		{code: ErrCredentialsIncomplete, expectedStatus: http.StatusFailedDependency},
		{code: ErrSyncAlreadyRunning, expectedStatus: http.StatusConflict},
		{code: "DESCONHECIDO", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", map[string]string{"campo": "valor"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrReviewFailed).Code)

	apiErr := FromError(errors.New("falhou"), ErrReviewFailed)
	assert.Equal(t, ErrReviewFailed, apiErr.Code)
	assert.Equal(t, "falhou", apiErr.Message)
}
