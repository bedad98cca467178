// Package seed provides helpers to create demo data for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var groupSeeds = []struct {
	Title string
	Slug  string
}{
	{"Travel", "travel"},
	{"Food", "food"},
	{"Technology", "technology"},
	{"Books", "books"},
	{"Music", "music"},
	{"Photography", "photography"},
	{"Poetry", "poetry"},
	{"Science", "science"},
}

// Seed populates the database with demo users, groups, posts, comments and
// follow edges.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users, err := seedUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	groups, err := seedGroups(db)
	if err != nil {
		return fmt.Errorf("seed groups: %w", err)
	}

	posts, err := seedPosts(db, r, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	if err := seedComments(db, r, users, posts); err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}

	if err := seedFollows(db, r, users); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Follow{},
		&models.Comment{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, n int) ([]*models.User, error) {
	// Every seeded account shares one password so logging in during
	// development is painless.
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(10),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func seedGroups(db *gorm.DB) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, len(groupSeeds))
	for _, gs := range groupSeeds {
		group := &models.Group{
			Title:       gs.Title,
			Slug:        gs.Slug,
			Description: gofakeit.Sentence(12),
		}
		if err := db.Create(group).Error; err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func seedPosts(db *gorm.DB, r *rand.Rand, users []*models.User, groups []*models.Group, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[r.Intn(len(users))]
		post := &models.Post{
			Text:     gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID: author.ID,
			// spread posts over the last 90 days
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		// roughly two thirds of posts live in a group
		if r.Intn(3) != 0 {
			groupID := groups[r.Intn(len(groups))].ID
			post.GroupID = &groupID
		}
		if r.Intn(4) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func seedComments(db *gorm.DB, r *rand.Rand, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			comment := &models.Comment{
				Text:     gofakeit.Sentence(8),
				PostID:   post.ID,
				AuthorID: users[r.Intn(len(users))].ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedFollows(db *gorm.DB, r *rand.Rand, users []*models.User) error {
	for _, user := range users {
		for i := 0; i < r.Intn(5); i++ {
			author := users[r.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
			// duplicates are possible with random picks; ignore them
			if err := db.Where(follow).FirstOrCreate(follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
