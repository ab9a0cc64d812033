package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, email, username string) (*models.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	args := m.Called(ctx, username, confirmationCode)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAuthHandler(svc).RegisterRoutes(router.Group("/auth"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_SignUp(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("SignUp", mock.Anything, "alice@example.com", "alice").
		Return(&models.User{Username: "alice", Email: "alice@example.com"}, nil)

	w := postJSON(t, newAuthRouter(svc), "/auth/signup", gin.H{
		"email":    "alice@example.com",
		"username": "alice",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, "alice@example.com", resp["email"])
}

func TestAuthHandler_SignUp_MissingEmail(t *testing.T) {
	svc := new(MockAuthService)

	w := postJSON(t, newAuthRouter(svc), "/auth/signup", gin.H{"username": "alice"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_SignUp_ReservedUsername(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("SignUp", mock.Anything, "me@example.com", "me").
		Return(nil, service.NewValidationError("username", `Имя пользователя "me" запрещено`))

	w := postJSON(t, newAuthRouter(svc), "/auth/signup", gin.H{
		"email":    "me@example.com",
		"username": "me",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["username"], `Имя пользователя "me" запрещено`)
}

func TestAuthHandler_Token(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("IssueToken", mock.Anything, "alice", "abc123").Return("jwt-token", nil)

	w := postJSON(t, newAuthRouter(svc), "/auth/token", gin.H{
		"username":          "alice",
		"confirmation_code": "abc123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp["token"])
}

func TestAuthHandler_Token_UnknownUsername(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("IssueToken", mock.Anything, "ghost", "abc123").Return("", service.ErrNotFound)

	w := postJSON(t, newAuthRouter(svc), "/auth/token", gin.H{
		"username":          "ghost",
		"confirmation_code": "abc123",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_Token_WrongCode(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("IssueToken", mock.Anything, "alice", "wrong").
		Return("", service.NewValidationError("confirmation_code", "invalid confirmation code"))

	w := postJSON(t, newAuthRouter(svc), "/auth/token", gin.H{
		"username":          "alice",
		"confirmation_code": "wrong",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "confirmation_code")
}
