package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/dto"
	"github.com/nextiwant/wishlist-backend/internal/middleware"
	"github.com/nextiwant/wishlist-backend/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetMine(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	profile, err := h.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) UpdateMine(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	changes := domain.ProfileChanges{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhotoURL:  req.PhotoURL,
	}
	if req.Birthday != nil && *req.Birthday != "" {
		b, err := time.Parse(dto.DateLayout, *req.Birthday)
		if err != nil {
			return badRequest(c, "birthday must be YYYY-MM-DD")
		}
		changes.Birthday = &b
	}

	profile, err := h.profileService.Update(c.UserContext(), userID, changes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) GetPublic(c *fiber.Ctx) error {
	userID, err := domain.ParseUserID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	pub, err := h.profileService.GetPublic(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPublicProfileResponse(pub))
}
