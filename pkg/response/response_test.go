package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErrors "github.com/pressdeck/pressdeck/pkg/errors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestSuccess_WritesEnvelope(t *testing.T) {
	c, rec := newTestContext(t)

	Success(c, http.StatusCreated, gin.H{"id": "folder-1"})

	require.Equal(t, http.StatusCreated, rec.Code)

	var payload Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.True(t, payload.Success)
	require.Nil(t, payload.Error)
}

func TestError_RendersAppError(t *testing.T) {
	c, rec := newTestContext(t)

	Error(c, appErrors.NewNotFound("asset not found"))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var payload Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.False(t, payload.Success)
	require.Equal(t, "NOT_FOUND", payload.Error.Code)
	require.Equal(t, "asset not found", payload.Error.Message)
}

func TestError_NilDefaultsToInternal(t *testing.T) {
	c, rec := newTestContext(t)

	Error(c, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
