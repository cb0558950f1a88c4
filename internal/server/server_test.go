package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"building/internal/models"
	"building/internal/repositories"
	"building/internal/server"
	"building/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// brokenUserRepository fails listing, as a lost database connection would.
type brokenUserRepository struct {
	*repositories.MemoryUserRepository
}

func (r brokenUserRepository) GetAll(context.Context) ([]models.User, error) {
	return nil, errors.New("connection refused")
}

func newTestApp(t *testing.T, users repositories.UserRepository) (*fiber.App, string) {
	t.Helper()
	logger := zap.NewNop()

	userService := services.NewUserService(users, nil, logger, bcrypt.MinCost)
	reportService := services.NewReportService(repositories.NewMemoryReportRepository(), users, nil, logger)
	authService := services.NewAuthService(users, "test_jwt_secret", time.Hour, logger)

	_, err := userService.EnsureAdmin(context.Background(), "admin@x.com", "secret")
	require.NoError(t, err)
	token, err := authService.Login(context.Background(), services.LoginInput{Email: "admin@x.com", Password: "secret"})
	require.NoError(t, err)

	app := server.NewApp(
		server.Services{Users: userService, Reports: reportService, Auth: authService},
		server.Options{AllowedOrigins: []string{"http://localhost:3000"}, LoginRateLimit: 5},
		logger,
	)
	return app, token
}

func TestServer_HealthCheck(t *testing.T) {
	app, _ := newTestApp(t, repositories.NewMemoryUserRepository())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServer_CORSPreflight(t *testing.T) {
	app, _ := newTestApp(t, repositories.NewMemoryUserRepository())

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPatch))
}

func TestServer_StoreFailureIsInternalError(t *testing.T) {
	app, token := newTestApp(t, brokenUserRepository{repositories.NewMemoryUserRepository()})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body["message"])
}
