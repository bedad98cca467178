package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
)

func jsonRequest(method, path string, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreatePost(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	author := createTestUser(t, db, "leo")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", author.ID)
		return c.Next()
	})
	app.Post("/api/posts", s.CreatePost)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", []byte(`{"text":"hello"}`)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePostEmptyTextRejected(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	author := createTestUser(t, db, "leo")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", author.ID)
		return c.Next()
	})
	app.Post("/api/posts", s.CreatePost)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", []byte(`{"text":""}`)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdatePostNonAuthorRedirectsToDetail(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	author := createTestUser(t, db, "leo")
	intruder := createTestUser(t, db, "mia")
	post := createTestPosts(t, db, author, 1)[0]

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", intruder.ID)
		return c.Next()
	})
	app.Put("/api/posts/:id", s.UpdatePost)

	resp, err := app.Test(jsonRequest(http.MethodPut,
		fmt.Sprintf("/api/posts/%d", post.ID), []byte(`{"text":"hijacked"}`)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/api/posts/%d", post.ID), resp.Header.Get("Location"))

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "post", stored.Text, "the edit must not be applied")
}

func TestAnonymousWriteRedirectsToLogin(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)

	app := fiber.New()
	app.Post("/api/posts", s.AuthOrLoginRedirect(), s.CreatePost)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", []byte(`{"text":"hello"}`)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "anonymous writes are dropped")
}

func TestCreateComment(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	author := createTestUser(t, db, "leo")
	post := createTestPosts(t, db, author, 1)[0]

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", author.ID)
		return c.Next()
	})
	app.Post("/api/posts/:id/comments", s.CreateComment)

	resp, err := app.Test(jsonRequest(http.MethodPost,
		fmt.Sprintf("/api/posts/%d/comments", post.ID), []byte(`{"text":"nice"}`)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	author := createTestUser(t, db, "leo")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", author.ID)
		return c.Next()
	})
	app.Post("/api/posts/:id/comments", s.CreateComment)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts/999/comments", []byte(`{"text":"hi"}`)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollowSelfRejected(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	user := createTestUser(t, db, "leo")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", user.ID)
		return c.Next()
	})
	app.Post("/api/users/:username/follow", s.FollowAuthor)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/users/leo/follow", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthenticatedRequestPassesAuthMiddleware(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	user := createTestUser(t, db, "leo")

	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/api/users/me", s.AuthRequired(), s.GetMyProfile)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
