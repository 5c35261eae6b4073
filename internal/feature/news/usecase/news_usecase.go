// Package usecase implements the business rules of the news feature.
package usecase

import (
	"context"

	"newsportal/internal/apperr"
	commententity "newsportal/internal/feature/comment/domain/entity"
	"newsportal/internal/feature/news/domain/entity"
	"newsportal/internal/platform/paging"
)

// Filter carries the optional list criteria. Each non-empty field adds
// a case-insensitive contains predicate; all active predicates are
// combined with AND, and an empty filter matches every article.
type Filter struct {
	Title string
	Text  string
}

// IsEmpty reports whether no criterion is set.
func (f Filter) IsEmpty() bool {
	return f.Title == "" && f.Text == ""
}

// NewsRepository abstracts the persistence layer for news entities.
// The interface is defined by the consumer (usecase), not the provider
// (adapters).
type NewsRepository interface {
	// FindByID retrieves an article by id. Returns
	// apperr.NotFoundError when absent.
	FindByID(ctx context.Context, id uint) (*entity.News, error)

	// FindAllByFilter retrieves one page of articles matching the
	// filter, ordered by id, with the total match count.
	FindAllByFilter(ctx context.Context, filter Filter, req paging.Request) ([]entity.News, int64, error)

	// FindAllByOwnerID retrieves one page of articles created by the
	// user, ordered by id, with the total count.
	FindAllByOwnerID(ctx context.Context, ownerID uint, req paging.Request) ([]entity.News, int64, error)

	// Create persists a new article.
	Create(ctx context.Context, news *entity.News) error

	// Save persists changes to an existing article.
	Save(ctx context.Context, news *entity.News) error

	// HardDeleteCascade removes the article and its comments
	// atomically.
	HardDeleteCascade(ctx context.Context, news *entity.News) error
}

// UserChecker answers existence questions about users. Implemented by
// the user feature adapters.
type UserChecker interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// CommentLister pages the comments of one article. Implemented by the
// comment feature adapters.
type CommentLister interface {
	FindAllByNewsID(ctx context.Context, newsID uint, req paging.Request) ([]commententity.Comment, int64, error)
}

// Input carries the client-supplied fields of an article. Audit fields
// are stamped from the authenticated principal.
type Input struct {
	Title string
	Text  string
}

// newsUsecase implements the news business logic.
type newsUsecase struct {
	news     NewsRepository
	users    UserChecker
	comments CommentLister
}

// NewNewsUsecase creates a new newsUsecase instance.
func NewNewsUsecase(news NewsRepository, users UserChecker, comments CommentLister) *newsUsecase {
	return &newsUsecase{news: news, users: users, comments: comments}
}

// FindAllByFilter returns one page of articles matching the filter.
func (u *newsUsecase) FindAllByFilter(ctx context.Context, filter Filter, req paging.Request) ([]entity.News, int64, error) {
	return u.news.FindAllByFilter(ctx, filter, req)
}

// FindAllByUserID returns one page of the user's articles. The owner id
// must exist, deleted accounts included; otherwise NotFound(User).
func (u *newsUsecase) FindAllByUserID(ctx context.Context, userID uint, req paging.Request) ([]entity.News, int64, error) {
	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFoundByID("User", userID)
	}
	return u.news.FindAllByOwnerID(ctx, userID, req)
}

// FindByIDWithComments returns the article together with one page of
// its comments.
func (u *newsUsecase) FindByIDWithComments(ctx context.Context, id uint, req paging.Request) (*entity.News, []commententity.Comment, int64, error) {
	news, err := u.news.FindByID(ctx, id)
	if err != nil {
		return nil, nil, 0, err
	}
	comments, total, err := u.comments.FindAllByNewsID(ctx, id, req)
	if err != nil {
		return nil, nil, 0, err
	}
	return news, comments, total, nil
}

// IsOwner reports whether the user created the article. A missing
// article is NotFound; an article owned by someone else is false, not
// an error.
func (u *newsUsecase) IsOwner(ctx context.Context, userID, newsID uint) (bool, error) {
	news, err := u.news.FindByID(ctx, newsID)
	if err != nil {
		return false, err
	}
	return news.OwnerID == userID, nil
}

// Create persists a new article authored by actorID.
func (u *newsUsecase) Create(ctx context.Context, actorID uint, in Input) (*entity.News, error) {
	news := &entity.News{
		Title:       in.Title,
		Text:        in.Text,
		OwnerID:     actorID,
		UpdatedByID: actorID,
	}
	if err := u.news.Create(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

// UpdateByID overwrites title and text and records actorID as the last
// editor. The owner never changes.
func (u *newsUsecase) UpdateByID(ctx context.Context, actorID, id uint, in Input) (*entity.News, error) {
	news, err := u.news.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	news.Title = in.Title
	news.Text = in.Text
	news.UpdatedByID = actorID

	if err := u.news.Save(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

// DeleteByID removes the article and its comments.
func (u *newsUsecase) DeleteByID(ctx context.Context, id uint) error {
	news, err := u.news.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return u.news.HardDeleteCascade(ctx, news)
}
