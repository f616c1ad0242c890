package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond_MapsKindsToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{Validation("bad input"), http.StatusBadRequest, ErrCodeInvalidInput},
		{Authorization("not yours"), http.StatusForbidden, ErrCodeForbidden},
		{NotFoundError("missing"), http.StatusNotFound, ErrCodeNotFound},
		{ConflictError("taken"), http.StatusConflict, ErrCodeConflict},
		{Unauthenticated("who are you"), http.StatusUnauthorized, ErrCodeUnauthorized},
		{Unavailable("later"), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{fmt.Errorf("wrapped: %w", ConflictError("taken")), http.StatusConflict, ErrCodeConflict},
		{errors.New("dial tcp: connection refused"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tt.err)

			require.Equal(t, tt.status, w.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection refused")
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("outer: %w", NotFoundError("team not found")))
	require.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
