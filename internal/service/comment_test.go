package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
)

func TestCommentService_AddComment(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "leo")
	commenter := env.createUser(t, "mia")
	post := env.createPosts(t, author, nil, 1)[0]

	comment, err := env.comment.AddComment(ctx, commenter.ID, post.ID, "nice post")
	require.NoError(t, err)
	assert.Equal(t, "nice post", comment.Text)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "mia", comment.Author.Username)
}

func TestCommentService_AddCommentRequiresText(t *testing.T) {
	env := setupTestEnv(t)
	author := env.createUser(t, "leo")
	post := env.createPosts(t, author, nil, 1)[0]

	_, err := env.comment.AddComment(context.Background(), author.ID, post.ID, "")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestCommentService_AddCommentUnknownPost(t *testing.T) {
	env := setupTestEnv(t)
	author := env.createUser(t, "leo")

	_, err := env.comment.AddComment(context.Background(), author.ID, 999, "hello?")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentService_ListCommentsOldestFirst(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "leo")
	post := env.createPosts(t, author, nil, 1)[0]

	first, err := env.comment.AddComment(ctx, author.ID, post.ID, "first")
	require.NoError(t, err)
	second, err := env.comment.AddComment(ctx, author.ID, post.ID, "second")
	require.NoError(t, err)

	comments, err := env.comment.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}
