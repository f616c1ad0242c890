package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/middleware"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/testutil"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	router      *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", handler.Signup)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(authService), handler.GetCurrentUser)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		router:      r,
	}
}

func (env authTestEnv) post(t *testing.T, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"email":    "newuser@example.com",
		"password": "supersecret",
	}
	w := env.post(t, "/api/auth/signup", payload)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["email"], response.Email)
	require.NotEmpty(t, response.ID)
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")

	w = env.post(t, "/api/auth/signup", payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/signup", map[string]string{
		"email":    "newuser@example.com",
		"password": "123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(context.Background(), services.Credentials{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing@example.com", response.Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")

	w = env.post(t, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, apiErr.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Signup(context.Background(), services.Credentials{
		Email:    "current@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	login := env.post(t, "/api/auth/login", map[string]string{
		"email":    "current@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, login.Code)
	cookies := login.Result().Cookies()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, user.Email, response.Email)
}

func TestAuthHandler_GetCurrentUser_WithoutSession(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)

	signup := env.post(t, "/api/auth/signup", map[string]string{
		"email":    "leaving@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, signup.Code)

	w := env.post(t, "/api/auth/logout", map[string]string{}, signup.Result().Cookies()...)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	me := httptest.NewRecorder()
	env.router.ServeHTTP(me, req)
	require.Equal(t, http.StatusUnauthorized, me.Code)
}
