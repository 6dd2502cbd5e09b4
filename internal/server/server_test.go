package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newHealthTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	return &Server{config: testConfig(), db: gormDB}, mock
}

func TestLivenessCheck(t *testing.T) {
	s := &Server{config: testConfig()}
	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadinessCheck(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		s, mock := newHealthTestServer(t)
		mock.ExpectPing()

		app := fiber.New()
		app.Get("/health/ready", s.ReadinessCheck)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Status string `json:"status"`
			Checks struct {
				Database string `json:"database"`
				Redis    string `json:"redis"`
			} `json:"checks"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "healthy", got.Status)
		assert.Equal(t, "healthy", got.Checks.Database)
		// without a configured Redis the API still reports ready
		assert.Equal(t, "unavailable", got.Checks.Redis)
	})

	t.Run("unreachable database", func(t *testing.T) {
		s, mock := newHealthTestServer(t)
		mock.ExpectPing().WillReturnError(assert.AnError)

		app := fiber.New()
		app.Get("/health/ready", s.ReadinessCheck)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
