// Package usecase implements the business rules of the comment feature.
package usecase

import (
	"context"

	"newsportal/internal/apperr"
	"newsportal/internal/feature/comment/domain/entity"
	"newsportal/internal/platform/paging"
)

// CommentRepository abstracts the persistence layer for comment
// entities. Defined by the consumer (usecase), implemented by adapters.
type CommentRepository interface {
	// FindByID retrieves a comment by id. Returns
	// apperr.NotFoundError when absent.
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)

	// FindAllByOwnerID retrieves one page of a user's comments ordered
	// by id, with the total count.
	FindAllByOwnerID(ctx context.Context, ownerID uint, req paging.Request) ([]entity.Comment, int64, error)

	// FindAllByNewsID retrieves one page of an article's comments
	// ordered by id, with the total count.
	FindAllByNewsID(ctx context.Context, newsID uint, req paging.Request) ([]entity.Comment, int64, error)

	// Create persists a new comment.
	Create(ctx context.Context, comment *entity.Comment) error

	// Save persists changes to an existing comment.
	Save(ctx context.Context, comment *entity.Comment) error

	// Delete removes the comment row.
	Delete(ctx context.Context, comment *entity.Comment) error
}

// UserChecker answers existence questions about users.
type UserChecker interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// NewsChecker answers existence questions about news articles.
type NewsChecker interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// commentUsecase implements the comment business logic.
type commentUsecase struct {
	comments CommentRepository
	users    UserChecker
	news     NewsChecker
}

// NewCommentUsecase creates a new commentUsecase instance.
func NewCommentUsecase(comments CommentRepository, users UserChecker, news NewsChecker) *commentUsecase {
	return &commentUsecase{comments: comments, users: users, news: news}
}

// FindByID returns the comment with the given id.
func (u *commentUsecase) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	return u.comments.FindByID(ctx, id)
}

// FindAllByUserID returns one page of the user's comments. The user id
// must exist, deleted accounts included; otherwise NotFound(User).
func (u *commentUsecase) FindAllByUserID(ctx context.Context, userID uint, req paging.Request) ([]entity.Comment, int64, error) {
	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFoundByID("User", userID)
	}
	return u.comments.FindAllByOwnerID(ctx, userID, req)
}

// FindAllByNewsID returns one page of an article's comments; a missing
// article is NotFound(News).
func (u *commentUsecase) FindAllByNewsID(ctx context.Context, newsID uint, req paging.Request) ([]entity.Comment, int64, error) {
	exists, err := u.news.ExistsByID(ctx, newsID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFoundByID("News", newsID)
	}
	return u.comments.FindAllByNewsID(ctx, newsID, req)
}

// IsOwner reports whether the user wrote the comment. A missing comment
// is NotFound; a foreign one is false, not an error.
func (u *commentUsecase) IsOwner(ctx context.Context, userID, commentID uint) (bool, error) {
	comment, err := u.comments.FindByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	return comment.OwnerID == userID, nil
}

// Create attaches a new comment by actorID to the article; a missing
// article is NotFound(News).
func (u *commentUsecase) Create(ctx context.Context, actorID, newsID uint, text string) (*entity.Comment, error) {
	exists, err := u.news.ExistsByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundByID("News", newsID)
	}

	comment := &entity.Comment{
		Text:    text,
		OwnerID: actorID,
		NewsID:  newsID,
	}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateByID replaces the comment text. Owner and article binding never
// change.
func (u *commentUsecase) UpdateByID(ctx context.Context, id uint, text string) (*entity.Comment, error) {
	comment, err := u.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment.Text = text
	if err := u.comments.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteByID removes the comment.
func (u *commentUsecase) DeleteByID(ctx context.Context, id uint) error {
	comment, err := u.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return u.comments.Delete(ctx, comment)
}
