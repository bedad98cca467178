package server

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
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
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server against sqlite and the given Redis client
// without touching the Prometheus registry or the network.
func newTestServer(t *testing.T, db *gorm.DB, redisClient *redis.Client) *Server {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	s := &Server{
		config:      &config.Config{JWTSecret: "test-secret-for-handler-tests"},
		db:          db,
		redis:       redisClient,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		feedCache:   cache.NewFeedCache(redisClient),
	}
	s.feedService = service.NewFeedService(postRepo, groupRepo, userRepo, followRepo)
	s.followService = service.NewFollowService(followRepo, userRepo)
	s.postService = service.NewPostService(postRepo, groupRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	return s
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestPosts(t *testing.T, db *gorm.DB, author *models.User, n int) []*models.Post {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := &models.Post{
			Text:      "post",
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(post).Error; err != nil {
			t.Fatalf("create post: %v", err)
		}
		posts = append(posts, post)
	}
	return posts
}
