package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t, time.Hour)
	session, err := svc.Authenticate(t.Context(), "admin", "password")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", RequireToken(svc), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": u.Username})
	})
	return r, session.Token
}

func TestRequireToken_Valid(t *testing.T) {
	t.Parallel()

	r, token := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"admin"}`, w.Body.String())
}

func TestRequireToken_Rejections(t *testing.T) {
	t.Parallel()

	r, token := newProtectedRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"lowercase scheme", "bearer " + token},
		{"wrong scheme", "Basic " + token},
		{"no space", "Bearer" + token},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"token only", token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestCurrentUser_Unset(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CurrentUser(c)
	assert.False(t, ok)
}
