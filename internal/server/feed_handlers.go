package server

import (
	"encoding/json"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed. The global feed is the only cached view:
// the rendered response body is stored per page for cache.FeedPageTTL and
// served to every viewer, so a just-written post can stay invisible here
// until the window lapses.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page := parsePage(c)

	// The feed_cache_bypass flag rolls out live reads to a slice of
	// authenticated users; everyone else keeps the cached page.
	if s.featureFlags != nil {
		viewerID, _ := s.optionalUserID(c)
		if s.featureFlags.Enabled("feed_cache_bypass", viewerID) {
			feedPage, err := s.feedService.ListGlobal(c.Context(), page)
			if err != nil {
				return respondServiceError(c, err)
			}
			return c.JSON(feedPage)
		}
	}

	if body, ok := s.feedCache.Get(c.Context(), page); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}

	feedPage, err := s.feedService.ListGlobal(c.Context(), page)
	if err != nil {
		return respondServiceError(c, err)
	}

	body, err := json.Marshal(feedPage)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.feedCache.Put(c.Context(), page, body, cache.FeedPageTTL)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GetFollowingFeed handles GET /api/feed/following. Personalized feeds are
// always served live.
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	feedPage, err := s.feedService.ListFollowing(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feedPage)
}

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// GetGroupFeed handles GET /api/groups/:slug/posts
func (s *Server) GetGroupFeed(c *fiber.Ctx) error {
	group, feedPage, err := s.feedService.ListByGroup(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"group": group,
		"feed":  feedPage,
	})
}

// GetAuthorFeed handles GET /api/users/:username/posts
func (s *Server) GetAuthorFeed(c *fiber.Ctx) error {
	author, feedPage, err := s.feedService.ListByAuthor(c.Context(), c.Params("username"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"author": author,
		"feed":   feedPage,
	})
}

// GetFeatureFlags handles GET /api/admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	return c.JSON(fiber.Map{
		"flags":    s.featureFlags.Raw(),
		"snapshot": s.featureFlags.Snapshot(userID),
	})
}

// InvalidateFeedCache handles POST /api/admin/cache/invalidate
func (s *Server) InvalidateFeedCache(c *fiber.Ctx) error {
	if err := s.feedCache.InvalidateAll(c.Context()); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"status": "invalidated"})
}
