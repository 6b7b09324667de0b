package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"online_queue/internal/logger"
	"online_queue/internal/response"
)

type brokenVerifier struct{}

func (brokenVerifier) Verify(context.Context, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func newRouter(v Verifier) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	reached := false

	r := gin.New()
	r.GET("/me", RequireUser(v, logger.Discard()), func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r, &reached
}

func TestRequireUser_AcceptsHeaderAndQuery(t *testing.T) {
	v := NewJWTVerifier("secret")
	token, err := v.IssueToken(7, time.Hour)
	require.NoError(t, err)
	r, _ := newRouter(v)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireUser_RejectsBeforeHandler(t *testing.T) {
	r, reached := newRouter(NewJWTVerifier("secret"))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)

	var body response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, response.CodeUnauthorized, body.Error.Code)
	assert.Nil(t, body.Data)
}

func TestRequireUser_VerifierUnavailable(t *testing.T) {
	r, reached := newRouter(brokenVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/me?token=x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, *reached)
}
