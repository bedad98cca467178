// Package service contains the application business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// FeedPageSize is the fixed number of posts per feed page.
const FeedPageSize = 10

// FeedPage is one page of a post listing.
type FeedPage struct {
	Posts    []*models.Post `json:"posts"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// FeedService assembles paginated post listings. Pages are 1-indexed and a
// page past the end of the data returns an empty page, not an error.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewFeedService creates a new feed service
func NewFeedService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, userRepo repository.UserRepository, followRepo repository.FollowRepository) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// normalizePage clamps page to 1 and returns the matching offset.
func normalizePage(page int) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, (page - 1) * FeedPageSize
}

// ListGlobal returns one page of the site-wide feed, newest first.
func (s *FeedService) ListGlobal(ctx context.Context, page int) (*FeedPage, error) {
	page, offset := normalizePage(page)
	posts, total, err := s.postRepo.ListGlobal(ctx, FeedPageSize, offset)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, Total: total, Page: page, PageSize: FeedPageSize}, nil
}

// ListByGroup returns the group identified by slug together with one page of
// its posts. An unknown slug yields a NotFound error.
func (s *FeedService) ListByGroup(ctx context.Context, slug string, page int) (*models.Group, *FeedPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	page, offset := normalizePage(page)
	posts, total, err := s.postRepo.ListByGroup(ctx, group.ID, FeedPageSize, offset)
	if err != nil {
		return nil, nil, err
	}
	return group, &FeedPage{Posts: posts, Total: total, Page: page, PageSize: FeedPageSize}, nil
}

// ListByAuthor returns the author's profile together with one page of their
// posts. An unknown username yields a NotFound error.
func (s *FeedService) ListByAuthor(ctx context.Context, username string, page int) (*models.User, *FeedPage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	page, offset := normalizePage(page)
	posts, total, err := s.postRepo.ListByAuthor(ctx, author.ID, FeedPageSize, offset)
	if err != nil {
		return nil, nil, err
	}
	return author, &FeedPage{Posts: posts, Total: total, Page: page, PageSize: FeedPageSize}, nil
}

// ListFollowing returns one page of posts authored by users the viewer
// follows. A viewer following nobody gets an empty page.
func (s *FeedService) ListFollowing(ctx context.Context, userID uint, page int) (*FeedPage, error) {
	authorIDs, err := s.followRepo.AuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	page, offset := normalizePage(page)
	posts, total, err := s.postRepo.ListByAuthors(ctx, authorIDs, FeedPageSize, offset)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, Total: total, Page: page, PageSize: FeedPageSize}, nil
}
