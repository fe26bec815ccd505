//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"equipment-reservation/internal/handler/api"
	resdto "equipment-reservation/internal/handler/dto/response"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/usecase/commands"
	"equipment-reservation/internal/usecase/queries"
	"equipment-reservation/tests/common/builder"
	"equipment-reservation/tests/common/httptest"
	"equipment-reservation/tests/common/testutil"
	commandsmock "equipment-reservation/tests/mock/commands"
	queriesmock "equipment-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockAdminQueries
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAdminQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, config.NewTestConfig())

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// Mock middleware behavior for /auth/me
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			c.Set("admin_id", uuid.New())
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	reqBody := builder.NewAuthBuilder().BuildDTO()
	returnAdmin := builder.NewAdminBuilder().BuildView()
	loginResult := &commands.LoginResult{
		AdminID:     returnAdmin.ID,
		AccessToken: "test-jwt-token",
		ExpiresIn:   time.Hour,
	}

	s.Run("success: returns 200 OK for valid credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
			Return(loginResult, nil).Times(1)
		s.mockQueries.EXPECT().GetCurrentAdmin(gomock.Any(), returnAdmin.ID).
			Return(returnAdmin, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnAdmin.Email, response.Admin.Email)
		s.Equal("test-jwt-token", response.AccessToken)
		s.Equal(int64(3600), response.ExpiresIn)

		cookie := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(cookie)
		s.Equal("test-jwt-token", cookie.Value)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		bound := []testCaseAuth{
			{name: "email boundary OK (valid email)", mutate: testutil.Field("email", "valid@example.com"), expectCode: http.StatusOK},
			{name: "email boundary invalid (invalid email)", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "password boundary OK (8 chars)", mutate: testutil.Field("password", "password"), expectCode: http.StatusOK},
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", strings.Repeat("a", 7)), expectCode: http.StatusBadRequest},
		}

		missing := []testCaseAuth{
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
		}

		empty := []testCaseAuth{
			{name: "empty email", mutate: testutil.Field("email", ""), expectCode: http.StatusBadRequest},
			{name: "empty password", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
		}

		allValidationTestCases := [][]testCaseAuth{bound, missing, empty}

		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusOK {
						email, _ := requestMap["email"].(string)
						password, _ := requestMap["password"].(string)
						expectedReq := builder.NewAuthBuilder().WithEmail(email).WithPassword(password).BuildDTO()
						s.mockCommands.EXPECT().Login(gomock.Any(), expectedReq).
							Return(loginResult, nil)
						s.mockQueries.EXPECT().GetCurrentAdmin(gomock.Any(), returnAdmin.ID).
							Return(returnAdmin, nil)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					if tc.expectCode == http.StatusOK {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid credentials",
				commandsError:  commands.ErrInvalidCredentials,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "malformed credentials",
				commandsError:  commands.ErrAuthenticationFailed,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "admin inactive",
				commandsError:  commands.ErrAdminInactive,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Account is inactive",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: expires the access token cookie", func() {
		session := &http.Cookie{Name: "access_token", Value: "issued-at-login"}
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, "/auth/logout", nil, []*http.Cookie{session}, "")

		s.Equal(http.StatusNoContent, rec.Code)
		cleared := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(cleared)
		s.Empty(cleared.Value)
		s.Negative(cleared.MaxAge)
		s.True(cleared.HttpOnly)
	})

	s.Run("success: works without a session", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"
	returnAdmin := builder.NewAdminBuilder().WithRole("staff").BuildView()

	s.Run("success: returns current admin info", func() {
		s.mockQueries.EXPECT().GetCurrentAdmin(gomock.Any(), gomock.Any()).
			Return(returnAdmin, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnAdmin.Email, response["email"])
		s.Equal("staff", response["role"])
		s.NotContains(rec.Body.String(), "password")
	})

	s.Run("error: returns 401 when admin_id missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Admin not authenticated")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "admin not found",
				commandsError:  queries.ErrAdminNotFound,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Admin not found",
			},
			{
				name:           "admin inactive",
				commandsError:  queries.ErrAdminInactive,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Account is inactive",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetCurrentAdmin(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
