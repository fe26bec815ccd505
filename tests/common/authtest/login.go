//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/pkg/cookie"
	"equipment-reservation/tests/common/dbtest"
	"equipment-reservation/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fixtures.TestPasswordHash is the bcrypt hash of this value
const FixturePassword = "password123"

// LoginAdmin goes through POST /api/auth/login and returns the access_token cookie value.
func LoginAdmin(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	access := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, access, "login did not set %s", cookie.AccessTokenCookieName)
	require.NotEmpty(t, access.Value)

	return access.Value
}

// CreateAndLogin seeds an admin with the fixture password (role "staff" or "admin") and logs in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestAdmin(t, db, email, role)
	return LoginAdmin(t, router, email, FixturePassword)
}
