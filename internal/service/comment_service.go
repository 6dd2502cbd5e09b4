package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// CommentService implements comment CRUD with ownership checks. Every
// operation is scoped to a parent post.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput carries a validated create request.
type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Content  string
}

// UpdateCommentInput carries a partial update. Nil fields are left untouched.
type UpdateCommentInput struct {
	AuthorID  uint
	PostID    uint
	CommentID uint
	Content   *string
}

// DeleteCommentInput identifies the comment to delete and the acting user.
type DeleteCommentInput struct {
	AuthorID  uint
	PostID    uint
	CommentID uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment creates a comment under an existing post. A missing parent
// post is NotFound; nothing is persisted in that case.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := s.postRepo.Exists(ctx, in.PostID); err != nil {
		return nil, err
	}

	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, in.PostID, comment.ID)
}

func (s *CommentService) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, postID, commentID)
}

// ListComments returns a page of a post's comments. The parent post must exist.
func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, int64, error) {
	if err := s.postRepo.Exists(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// UpdateComment applies a partial update with the same existence-then-ownership
// check order as posts.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != in.AuthorID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	if in.Content != nil {
		if err := validation.ValidateCommentContent(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		comment.Content = *in.Content
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, in.PostID, comment.ID)
}

// DeleteComment hard-deletes a comment after existence and ownership checks.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.PostID, in.CommentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != in.AuthorID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, comment.ID)
}
