package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FieldFinderOrganization/fieldfinder/internal/auth"
)

func setupHandler(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	handler := NewHandler(sqlxDB, "test-secret")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/refresh", handler.Refresh)
	router.GET("/me", auth.AuthMiddleware("test-secret"), handler.GetMe)

	closer := func() {
		sqlxDB.Close()
	}

	return router, mock, closer
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	bodyBytes, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Successful registration", func(t *testing.T) {
		router, mock, closer := setupHandler(t)
		defer closer()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Alice", "alice@example.com", sqlmock.AnyArg(), "member").
			WillReturnRows(userRow(1, "Alice", "alice@example.com", "hash", "member"))

		w := doJSON(router, "POST", "/auth/register", RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password123",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate email", func(t *testing.T) {
		router, mock, closer := setupHandler(t)
		defer closer()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		w := doJSON(router, "POST", "/auth/register", RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Password shorter than eight characters", func(t *testing.T) {
		router, _, closer := setupHandler(t)
		defer closer()

		w := doJSON(router, "POST", "/auth/register", RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	t.Run("Successful login", func(t *testing.T) {
		router, mock, closer := setupHandler(t)
		defer closer()

		mock.ExpectQuery("SELECT id, name, email, password_hash, role, created_at FROM users").
			WithArgs("alice@example.com").
			WillReturnRows(userRow(1, "Alice", "alice@example.com", hash, "member"))

		w := doJSON(router, "POST", "/auth/login", LoginRequest{
			Email:    "alice@example.com",
			Password: "password123",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, 1, resp.User.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		router, mock, closer := setupHandler(t)
		defer closer()

		mock.ExpectQuery("SELECT id, name, email, password_hash, role, created_at FROM users").
			WithArgs("alice@example.com").
			WillReturnRows(userRow(1, "Alice", "alice@example.com", hash, "member"))

		w := doJSON(router, "POST", "/auth/login", LoginRequest{
			Email:    "alice@example.com",
			Password: "not-the-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown email", func(t *testing.T) {
		router, mock, closer := setupHandler(t)
		defer closer()

		mock.ExpectQuery("SELECT id, name, email, password_hash, role, created_at FROM users").
			WithArgs("nobody@example.com").
			WillReturnError(assert.AnError)

		w := doJSON(router, "POST", "/auth/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRefreshHandler(t *testing.T) {
	t.Run("Valid refresh token", func(t *testing.T) {
		router, _, closer := setupHandler(t)
		defer closer()

		_, refreshToken, err := auth.GenerateTokens(1, "alice@example.com", "member", "test-secret", "test-secret")
		require.NoError(t, err)

		w := doJSON(router, "POST", "/auth/refresh", RefreshRequest{RefreshToken: refreshToken})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["access_token"])
	})

	t.Run("Garbage refresh token", func(t *testing.T) {
		router, _, closer := setupHandler(t)
		defer closer()

		w := doJSON(router, "POST", "/auth/refresh", RefreshRequest{RefreshToken: "not-a-token"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetMeHandler(t *testing.T) {
	router, mock, closer := setupHandler(t)
	defer closer()

	token, err := auth.GenerateAccessToken(1, "alice@example.com", "member", "test-secret")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, name, email, password_hash, role, created_at FROM users").
		WithArgs(1).
		WillReturnRows(userRow(1, "Alice", "alice@example.com", "hash", "member"))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var u User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "Alice", u.Name)
}
