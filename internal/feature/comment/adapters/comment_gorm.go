// Package adapters provides the gorm-backed repository of the comment
// feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"newsportal/internal/apperr"
	"newsportal/internal/feature/comment/domain/entity"
	"newsportal/internal/feature/comment/usecase"
	"newsportal/internal/platform/paging"
)

// commentGorm is the gorm implementation of usecase.CommentRepository.
type commentGorm struct {
	db *gorm.DB
}

var _ usecase.CommentRepository = (*commentGorm)(nil)

// NewCommentGorm creates a new commentGorm instance on the given
// connection.
func NewCommentGorm(db *gorm.DB) *commentGorm {
	return &commentGorm{db: db}
}

// FindByID retrieves a comment by id.
func (r *commentGorm) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundByID("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

// FindAllByOwnerID pages the comments written by one user.
func (r *commentGorm) FindAllByOwnerID(ctx context.Context, ownerID uint, req paging.Request) ([]entity.Comment, int64, error) {
	return r.page(ctx, "inserted_by_id = ?", ownerID, req)
}

// FindAllByNewsID pages the comments attached to one article.
func (r *commentGorm) FindAllByNewsID(ctx context.Context, newsID uint, req paging.Request) ([]entity.Comment, int64, error) {
	return r.page(ctx, "news_id = ?", newsID, req)
}

func (r *commentGorm) page(ctx context.Context, cond string, arg uint, req paging.Request) ([]entity.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Comment{}).Where(cond, arg)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []entity.Comment
	if err := query.Order("id").Offset(req.Offset()).Limit(req.Size).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Create inserts the comment.
func (r *commentGorm) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Save persists all fields of an existing comment.
func (r *commentGorm) Save(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes the comment row.
func (r *commentGorm) Delete(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Delete(&entity.Comment{}, comment.ID).Error
}
