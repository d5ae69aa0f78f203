package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/testutil"
)

func authRouter() *gin.Engine {
	router := gin.New()
	router.Use(Auth(testJWTSecret))
	router.GET("/test", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		companyID, _ := GetCompanyID(c)
		response.Success(c, gin.H{"user_id": userID, "company_id": companyID})
	})
	return router
}

func TestAuth_Success(t *testing.T) {
	token := testutil.TestToken(t, testJWTSecret, 123, 7, 24*time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authRouter().ServeHTTP(w, req)

	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(123), data["user_id"])
	assert.Equal(t, float64(7), data["company_id"])
}

func TestAuth_Rejections(t *testing.T) {
	valid := testutil.TestToken(t, testJWTSecret, 1, 7, 24*time.Hour)
	otherSecret := testutil.TestToken(t, "another-secret", 1, 7, 24*time.Hour)
	expired := testutil.TestToken(t, testJWTSecret, 1, 7, -time.Hour)
	noCompany := testutil.TestToken(t, testJWTSecret, 1, 0, 24*time.Hour)

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing header", "", response.CodeAuthFailed},
		{"no bearer prefix", valid, response.CodeAuthFailed},
		{"garbage token", "Bearer not-a-jwt", response.CodeAuthFailed},
		{"wrong secret", "Bearer " + otherSecret, response.CodeAuthFailed},
		{"expired", "Bearer " + expired, response.CodeAuthFailed},
		{"no company", "Bearer " + noCompany, response.CodePermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			authRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantCode, parseResponse(t, w).Code)
		})
	}
}

func TestGetIDs_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)
	_, ok = GetCompanyID(c)
	assert.False(t, ok)

	c.Set(CompanyIDKey, "7")
	_, ok = GetCompanyID(c)
	assert.False(t, ok)
}
