package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CreatePostInput carries the fields a user supplies when publishing a post.
type CreatePostInput struct {
	Text      string  `json:"text"`
	GroupSlug *string `json:"group,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// UpdatePostInput carries the editable fields of a post.
type UpdatePostInput struct {
	Text      string  `json:"text"`
	GroupSlug *string `json:"group,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// PostService manages post lifecycle and enforces authorship rules.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// resolveGroup maps an optional group slug to its ID. A nil slug means the
// post belongs to no group.
func (s *PostService) resolveGroup(ctx context.Context, slug *string) (*uint, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, *slug)
	if err != nil {
		return nil, err
	}
	return &group.ID, nil
}

// CreatePost publishes a new post for authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, input CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, models.NewValidationError("post text is required")
	}

	groupID, err := s.resolveGroup(ctx, input.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     input.Text,
		AuthorID: authorID,
		GroupID:  groupID,
		ImageURL: input.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a post with its author, group and comments loaded.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost edits a post. Only the author may edit; anyone else gets an
// Unauthorized error and the post is left untouched.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, models.NewUnauthorizedError("only the author can edit this post")
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, models.NewValidationError("post text is required")
	}

	groupID, err := s.resolveGroup(ctx, input.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = input.Text
	post.GroupID = groupID
	post.ImageURL = input.ImageURL
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post. The author and admins may delete.
func (s *PostService) DeletePost(ctx context.Context, user *models.User, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != user.ID && !user.IsAdmin {
		return models.NewUnauthorizedError("only the author can delete this post")
	}
	return s.postRepo.Delete(ctx, postID)
}
