package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles POST /api/users/:username/follow. Following an
// already-followed author succeeds without creating a second edge.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.followService.Follow(c.Context(), userID, c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": true})
}

// UnfollowAuthor handles DELETE /api/users/:username/follow
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.followService.Unfollow(c.Context(), userID, c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}

// GetFollowStatus handles GET /api/users/:username/follow
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	following, err := s.followService.IsFollowing(c.Context(), userID, c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}
