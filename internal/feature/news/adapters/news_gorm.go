// Package adapters provides the gorm-backed repository of the news
// feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"newsportal/internal/apperr"
	commententity "newsportal/internal/feature/comment/domain/entity"
	"newsportal/internal/feature/news/domain/entity"
	"newsportal/internal/feature/news/usecase"
	"newsportal/internal/platform/paging"
)

// newsGorm is the gorm implementation of usecase.NewsRepository.
type newsGorm struct {
	db *gorm.DB
}

var _ usecase.NewsRepository = (*newsGorm)(nil)

// NewNewsGorm creates a new newsGorm instance on the given connection.
func NewNewsGorm(db *gorm.DB) *newsGorm {
	return &newsGorm{db: db}
}

// FindByID retrieves an article by id.
func (r *newsGorm) FindByID(ctx context.Context, id uint) (*entity.News, error) {
	var news entity.News
	if err := r.db.WithContext(ctx).First(&news, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundByID("News", id)
		}
		return nil, err
	}
	return &news, nil
}

// ExistsByID reports whether an article with the id exists.
func (r *newsGorm) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.News{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindAllByFilter pages articles matching the filter. Every non-empty
// criterion becomes a case-insensitive contains predicate and the
// predicates are ANDed; no criteria means no WHERE clause at all.
func (r *newsGorm) FindAllByFilter(ctx context.Context, filter usecase.Filter, req paging.Request) ([]entity.News, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.News{}).Scopes(filterScope(filter))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var news []entity.News
	if err := query.Order("id").Offset(req.Offset()).Limit(req.Size).Find(&news).Error; err != nil {
		return nil, 0, err
	}
	return news, total, nil
}

// FindAllByOwnerID pages the articles created by one user.
func (r *newsGorm) FindAllByOwnerID(ctx context.Context, ownerID uint, req paging.Request) ([]entity.News, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.News{}).Where("inserted_by_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var news []entity.News
	if err := query.Order("id").Offset(req.Offset()).Limit(req.Size).Find(&news).Error; err != nil {
		return nil, 0, err
	}
	return news, total, nil
}

// Create inserts the article.
func (r *newsGorm) Create(ctx context.Context, news *entity.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// Save persists all fields of an existing article.
func (r *newsGorm) Save(ctx context.Context, news *entity.News) error {
	return r.db.WithContext(ctx).Save(news).Error
}

// HardDeleteCascade removes the article and its comments in a single
// transaction.
func (r *newsGorm) HardDeleteCascade(ctx context.Context, news *entity.News) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("news_id = ?", news.ID).Delete(&commententity.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.News{}, news.ID).Error
	})
}

// filterScope builds the composable filter predicate. Keeping it a
// scope lets callers mix arbitrary criteria subsets without branching.
func filterScope(filter usecase.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Title != "" {
			db = db.Where("LOWER(title) LIKE ?", contains(filter.Title))
		}
		if filter.Text != "" {
			db = db.Where("LOWER(text) LIKE ?", contains(filter.Text))
		}
		return db
	}
}

func contains(value string) string {
	return "%" + strings.ToLower(value) + "%"
}
