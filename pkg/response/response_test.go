package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "auris-notifier/pkg/errors"
)

var errNotFound = errors.New("not found")

func serve(t *testing.T, h gin.HandlerFunc) (int, Resp) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestOK(t *testing.T) {
	code, resp := serve(t, func(c *gin.Context) { OK(c, gin.H{"a": 1}) })
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, MessageSuccess, resp.Message)
}

func TestErrorWithMap(t *testing.T) {
	eMap := ErrorMapping{errNotFound: pkgErrors.NewHTTPError(404, "missing", http.StatusNotFound)}

	code, resp := serve(t, func(c *gin.Context) {
		ErrorWithMap(c, errors.Join(errors.New("lookup"), errNotFound), eMap)
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "missing", resp.Message)

	code, resp = serve(t, func(c *gin.Context) { ErrorWithMap(c, errors.New("other"), eMap) })
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, DefaultErrorMessage, resp.Message)
}

func TestPanicError(t *testing.T) {
	code, resp := serve(t, func(c *gin.Context) { PanicError(c, "boom", nil) })
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, InternalServerErrorCode, resp.ErrorCode)
}
