package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestApp(userRepo *MockUserRepository, actingUserID uint) *fiber.App {
	app := fiber.New()
	s := &Server{userService: service.NewUserService(userRepo)}

	if actingUserID != 0 {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", actingUserID)
			return c.Next()
		})
	}
	app.Get("/users", s.GetUsers)
	if actingUserID != 0 {
		app.Get("/users/me", s.GetMyProfile)
		app.Put("/users/me", s.UpdateMyProfile)
	}
	app.Get("/users/:id", s.GetUserProfile)
	return app
}

func TestGetUsers_Pagination(t *testing.T) {
	t.Run("paginated envelope", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("List", mock.Anything, 10, 10).
			Return([]models.User{{ID: 12}, {ID: 11}}, int64(12), nil)
		app := newUserTestApp(userRepo, 0)

		req := httptest.NewRequest(http.MethodGet, "/users?skip=10&limit=10", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Total   int64             `json:"total"`
			Page    int               `json:"page"`
			PerPage int               `json:"per_page"`
			Items   []json.RawMessage `json:"items"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(12), got.Total)
		assert.Equal(t, 2, got.Page)
		assert.Len(t, got.Items, 2)
	})

	t.Run("limit above maximum is 422", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		app := newUserTestApp(userRepo, 0)

		req := httptest.NewRequest(http.MethodGet, "/users?limit=200", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		userRepo.AssertNotCalled(t, "List")
	})
}

func TestGetUserProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "someone"}, nil)
		app := newUserTestApp(userRepo, 0)

		req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing user is 404", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("User"))
		app := newUserTestApp(userRepo, 0)

		req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetMyProfile(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(7)).
		Return(&models.User{ID: 7, Username: "me"}, nil)
	app := newUserTestApp(userRepo, 7)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, uint(7), got.ID)
}

func TestUpdateMyProfile(t *testing.T) {
	putJSON := func(app *fiber.App, body map[string]string) *http.Response {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("username change", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetForUpdate", mock.Anything, uint(7)).
			Return(&models.User{ID: 7, Username: "old_name", Email: "me@example.com"}, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "new_name" && u.Email == "me@example.com"
		})).Return(nil)
		app := newUserTestApp(userRepo, 7)

		resp := putJSON(app, map[string]string{"username": "new_name"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		userRepo.AssertExpectations(t)
	})

	t.Run("invalid email is 400", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetForUpdate", mock.Anything, uint(7)).
			Return(&models.User{ID: 7, Username: "old_name", Email: "me@example.com"}, nil)
		app := newUserTestApp(userRepo, 7)

		resp := putJSON(app, map[string]string{"email": "not-an-email"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		userRepo.AssertNotCalled(t, "Update")
	})

	t.Run("taken username is 400", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetForUpdate", mock.Anything, uint(7)).
			Return(&models.User{ID: 7, Username: "old_name", Email: "me@example.com"}, nil)
		userRepo.On("Update", mock.Anything, mock.Anything).
			Return(models.NewValidationError("Username or email already taken"))
		app := newUserTestApp(userRepo, 7)

		resp := putJSON(app, map[string]string{"username": "taken_name"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
