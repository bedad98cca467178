package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	groups   repository.GroupRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
	feed     *FeedService
	follow   *FollowService
	post     *PostService
	comment  *CommentService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		groups:   repository.NewGroupRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		follows:  repository.NewFollowRepository(db),
	}
	env.feed = NewFeedService(env.posts, env.groups, env.users, env.follows)
	env.follow = NewFollowService(env.follows, env.users)
	env.post = NewPostService(env.posts, env.groups)
	env.comment = NewCommentService(env.comments, env.posts)
	return env
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := &models.Group{
		Title: "Group " + slug,
		Slug:  slug,
	}
	require.NoError(t, e.db.Create(group).Error)
	return group
}

// createPosts inserts n posts with strictly increasing timestamps so the
// newest-first ordering is unambiguous.
func (e *testEnv) createPosts(t *testing.T, author *models.User, group *models.Group, n int) []*models.Post {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := &models.Post{
			Text:      "post",
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if group != nil {
			post.GroupID = &group.ID
		}
		require.NoError(t, e.db.Create(post).Error)
		posts = append(posts, post)
	}
	return posts
}
