package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/dto"
	"github.com/nextiwant/wishlist-backend/internal/metrics"
	"github.com/nextiwant/wishlist-backend/internal/middleware"
	"github.com/nextiwant/wishlist-backend/internal/services"
)

// PublicHandler serves share management, token access, claims and comments.
type PublicHandler struct {
	shareService   *services.ShareService
	commentService *services.CommentService
	metrics        *metrics.Metrics
}

func NewPublicHandler(shareService *services.ShareService, commentService *services.CommentService, m *metrics.Metrics) *PublicHandler {
	return &PublicHandler{shareService: shareService, commentService: commentService, metrics: m}
}

func (h *PublicHandler) CreateShare(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := domain.ParseWishlistID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CreateShareRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	share, err := h.shareService.CreateShare(c.UserContext(), userID, id, req.IsClaimable, req.ExpiresAt)
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.SharesCreated.Inc()
	return c.JSON(dto.NewShareResponse(share))
}

func (h *PublicHandler) RevokeShare(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := domain.ParseWishlistID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.shareService.RevokeShare(c.UserContext(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PublicHandler) GetWishlist(c *fiber.Ctx) error {
	pub, err := h.shareService.GetPublicWishlist(c.UserContext(), domain.ShareToken(c.Params("token")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPublicWishlistResponse(pub))
}

func (h *PublicHandler) Claim(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	clone, ok, err := h.shareService.Claim(c.UserContext(), domain.ShareToken(c.Params("token")), userID)
	if err != nil {
		h.metrics.Claims.WithLabelValues("error").Inc()
		return respondError(c, err)
	}
	if !ok {
		h.metrics.Claims.WithLabelValues("rejected").Inc()
		return badRequest(c, "This wishlist cannot be claimed")
	}
	h.metrics.Claims.WithLabelValues("claimed").Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.NewWishlistResponse(clone))
}

func (h *PublicHandler) ListComments(c *fiber.Ctx) error {
	views, err := h.commentService.ListPublicComments(c.UserContext(), domain.ShareToken(c.Params("token")))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CommentResponse, len(views))
	for i, v := range views {
		out[i] = dto.NewCommentResponse(v)
	}
	return c.JSON(out)
}

func (h *PublicHandler) AddComment(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	itemID, err := domain.ParseItemID(c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	view, err := h.commentService.AddComment(c.UserContext(), userID, itemID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.Comments.Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.NewCommentResponse(*view))
}

func (h *PublicHandler) AddReply(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	parentID, err := domain.ParseCommentID(c.Params("commentId"))
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	view, err := h.commentService.AddReply(c.UserContext(), userID, parentID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	h.metrics.Comments.Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.NewCommentResponse(*view))
}
