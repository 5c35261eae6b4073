package adapters

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"newsportal/internal/apperr"
	commententity "newsportal/internal/feature/comment/domain/entity"
	newsentity "newsportal/internal/feature/news/domain/entity"
	"newsportal/internal/feature/user/domain/entity"
	"newsportal/internal/platform/paging"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&newsentity.News{},
		&commententity.Comment{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, user *entity.User) *entity.User {
	t.Helper()
	if user.Password == "" {
		user.Password = "$2a$10$placeholderplaceholderplaceholderplaceholder"
	}
	if user.Role == "" {
		user.Role = entity.RoleSubscriber
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserGorm_FindAllActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		seedUser(t, db, &entity.User{Username: fmt.Sprintf("user%d", i)})
	}
	seedUser(t, db, &entity.User{Username: "ghost", Deleted: true})

	t.Run("excludes deleted users from page and count", func(t *testing.T) {
		users, total, err := repo.FindAllActive(ctx, paging.Request{Page: 0, Size: 20})

		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, users, 5)
		for _, u := range users {
			assert.False(t, u.Deleted)
		}
	})

	t.Run("pages in id order", func(t *testing.T) {
		users, total, err := repo.FindAllActive(ctx, paging.Request{Page: 1, Size: 2})

		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, users, 2)
		assert.Equal(t, "user3", users[0].Username)
		assert.Equal(t, "user4", users[1].Username)
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	active := seedUser(t, db, &entity.User{Username: "alive"})
	deleted := seedUser(t, db, &entity.User{Username: "gone", Deleted: true})

	t.Run("returns deleted users too", func(t *testing.T) {
		user, err := repo.FindByID(ctx, deleted.ID)

		require.NoError(t, err)
		assert.True(t, user.Deleted)
	})

	t.Run("missing id reports not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)

		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("active lookup skips deleted rows", func(t *testing.T) {
		_, err := repo.FindActiveByID(ctx, deleted.ID)
		assert.True(t, apperr.IsNotFound(err))

		user, err := repo.FindActiveByID(ctx, active.ID)
		require.NoError(t, err)
		assert.Equal(t, "alive", user.Username)
	})
}

func TestUserGorm_FindActiveByUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	seedUser(t, db, &entity.User{Username: "login"})
	seedUser(t, db, &entity.User{Username: "retired", Deleted: true})

	user, err := repo.FindActiveByUsername(ctx, "login")
	require.NoError(t, err)
	assert.Equal(t, "login", user.Username)

	_, err = repo.FindActiveByUsername(ctx, "retired")
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserGorm_IsUsernameTaken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	owner := seedUser(t, db, &entity.User{Username: "claimed"})

	t.Run("taken by another user", func(t *testing.T) {
		taken, err := repo.IsUsernameTaken(ctx, "claimed", 0)
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("own username is not a conflict", func(t *testing.T) {
		taken, err := repo.IsUsernameTaken(ctx, "claimed", owner.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("free username", func(t *testing.T) {
		taken, err := repo.IsUsernameTaken(ctx, "free", 0)
		require.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestUserGorm_SoftDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	author := seedUser(t, db, &entity.User{Username: "author", Role: entity.RoleJournalist})
	other := seedUser(t, db, &entity.User{Username: "other", Role: entity.RoleJournalist})

	mine := &newsentity.News{Title: "mine", Text: "t", OwnerID: author.ID, UpdatedByID: author.ID}
	theirs := &newsentity.News{Title: "theirs", Text: "t", OwnerID: other.ID, UpdatedByID: other.ID}
	require.NoError(t, db.Create(mine).Error)
	require.NoError(t, db.Create(theirs).Error)

	comment := &commententity.Comment{Text: "kept", OwnerID: author.ID, NewsID: theirs.ID}
	require.NoError(t, db.Create(comment).Error)

	require.NoError(t, repo.SoftDeleteCascade(ctx, author))

	t.Run("user row stays, marked deleted", func(t *testing.T) {
		user, err := repo.FindByID(ctx, author.ID)
		require.NoError(t, err)
		assert.True(t, user.Deleted)
	})

	t.Run("owned news are removed, others stay", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&newsentity.News{}).Where("inserted_by_id = ?", author.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count)

		require.NoError(t, db.Model(&newsentity.News{}).Where("id = ?", theirs.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("the user's comments keep their rows", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&commententity.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}
