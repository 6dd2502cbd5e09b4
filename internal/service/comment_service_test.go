package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]*models.Comment, int64, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, postID, commentID)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, postID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, PostID: postID}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("missing post is not found before validation", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.existsFn = func(_ context.Context, _ uint) error {
			return models.NewNotFoundError("Post")
		}
		svc := NewCommentService(noopCommentRepo(), postRepo)

		// Content is also invalid here; the missing post must win.
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{AuthorID: 1, PostID: 99})
		assertAppCode(t, err, models.CodeNotFound)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{AuthorID: 1, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 1,
			PostID:   1,
			Content:  strings.Repeat("x", 1001),
		})
		assertValidationError(t, err)
	})

	t.Run("success reloads with author", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 42
			return nil
		}
		commentRepo.getByIDFn = func(_ context.Context, postID, commentID uint) (*models.Comment, error) {
			return &models.Comment{
				ID:       commentID,
				PostID:   postID,
				AuthorID: 1,
				Content:  "hello",
				Author:   models.User{ID: 1, Username: "commenter"},
			}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())

		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 1,
			PostID:   1,
			Content:  "hello",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(42), comment.ID)
		assert.Equal(t, "commenter", comment.Author.Username)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.existsFn = func(_ context.Context, _ uint) error {
			return models.NewNotFoundError("Post")
		}
		svc := NewCommentService(noopCommentRepo(), postRepo)

		_, _, err := svc.ListComments(context.Background(), 99, 10, 0)
		assertAppCode(t, err, models.CodeNotFound)
	})

	t.Run("passes pagination through", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.listByPostFn = func(_ context.Context, postID uint, limit, offset int) ([]*models.Comment, int64, error) {
			assert.Equal(t, uint(1), postID)
			assert.Equal(t, 5, limit)
			assert.Equal(t, 10, offset)
			return []*models.Comment{{ID: 6}, {ID: 5}}, 12, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())

		comments, total, err := svc.ListComments(context.Background(), 1, 5, 10)
		require.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, int64(12), total)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	t.Run("missing comment is not found even for non-owner", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment")
		}
		svc := NewCommentService(commentRepo, noopPostRepo())

		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{AuthorID: 99, PostID: 1, CommentID: 5})
		assertAppCode(t, err, models.CodeNotFound)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, postID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, PostID: postID, AuthorID: 7}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())

		content := "updated"
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			AuthorID: 99, PostID: 1, CommentID: 5, Content: &content,
		})
		assertAppCode(t, err, models.CodeForbidden)
	})

	t.Run("owner updates content", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, postID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, PostID: postID, AuthorID: 7, Content: "old"}, nil
		}
		var saved *models.Comment
		commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
			saved = c
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())

		content := "updated"
		comment, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			AuthorID: 7, PostID: 1, CommentID: 5, Content: &content,
		})
		require.NoError(t, err)
		assert.Equal(t, "updated", comment.Content)
		require.NotNil(t, saved)
		assert.Equal(t, "updated", saved.Content)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, postID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, PostID: postID, AuthorID: 7}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())

		err := svc.DeleteComment(context.Background(), DeleteCommentInput{AuthorID: 99, PostID: 1, CommentID: 5})
		assertAppCode(t, err, models.CodeForbidden)
	})

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, postID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, PostID: postID, AuthorID: 7}, nil
		}
		var deletedID uint
		commentRepo.deleteFn = func(_ context.Context, id uint) error {
			deletedID = id
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())

		err := svc.DeleteComment(context.Background(), DeleteCommentInput{AuthorID: 7, PostID: 1, CommentID: 5})
		require.NoError(t, err)
		assert.Equal(t, uint(5), deletedID)
	})
}
