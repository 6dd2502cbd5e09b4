package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getForUpdateFn  func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetForUpdate(ctx context.Context, id uint) (*models.User, error) {
	return s.getForUpdateFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "existing", Email: "existing@example.com"}, nil
		},
		getForUpdateFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "existing", Email: "existing@example.com"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn: func(_ context.Context, _, _ int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("missing user is not found", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getForUpdateFn = func(_ context.Context, _ uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User")
		}
		svc := NewUserService(repo)

		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 99})
		assertAppCode(t, err, models.CodeNotFound)
	})

	t.Run("partial update only touches provided fields", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(repo)

		username := "new_name"
		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: &username})
		require.NoError(t, err)
		assert.Equal(t, "new_name", user.Username)
		assert.Equal(t, "existing@example.com", user.Email)
		require.NotNil(t, saved)
	})

	t.Run("invalid username rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())

		username := "ab"
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: &username})
		assertValidationError(t, err)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())

		email := "not-an-email"
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Email: &email})
		assertValidationError(t, err)
	})

	t.Run("short password rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())

		password := "12345"
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Password: &password})
		assertValidationError(t, err)
	})

	t.Run("username-only update keeps the stored password hash", func(t *testing.T) {
		t.Parallel()
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
		require.NoError(t, err)

		repo := noopUserRepo()
		// Cached reads serialize through JSON and come back without the
		// password hash. The update path must not see that copy.
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "existing", Email: "existing@example.com"}, nil
		}
		repo.getForUpdateFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "existing", Email: "existing@example.com", Password: string(hash)}, nil
		}
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(repo)

		username := "new_name"
		_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: &username})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, string(hash), saved.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("password123")))
	})

	t.Run("new password is hashed before storage", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(repo)

		password := "correct-horse"
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Password: &password})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NotEqual(t, password, saved.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte(password)))
	})
}

func TestUserService_ListUsers(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.listFn = func(_ context.Context, limit, offset int) ([]models.User, int64, error) {
		assert.Equal(t, 10, limit)
		assert.Equal(t, 0, offset)
		return []models.User{{ID: 2}, {ID: 1}}, 2, nil
	}
	svc := NewUserService(repo)

	users, total, err := svc.ListUsers(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(2), total)
}
