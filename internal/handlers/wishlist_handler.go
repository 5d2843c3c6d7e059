package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/dto"
	"github.com/nextiwant/wishlist-backend/internal/middleware"
	"github.com/nextiwant/wishlist-backend/internal/services"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	lists, err := h.wishlistService.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewWishlistListResponse(lists))
}

func (h *WishlistHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.CreateWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	visibility, err := domain.ParseVisibility(req.Visibility)
	if err != nil {
		return respondError(c, err)
	}

	w, err := h.wishlistService.Create(c.UserContext(), userID, services.WishlistInput{
		Name:        req.Name,
		Description: req.Description,
		Visibility:  visibility,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewWishlistResponse(w))
}

func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := domain.ParseWishlistID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	w, err := h.wishlistService.Get(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewWishlistResponse(w))
}

func (h *WishlistHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := domain.ParseWishlistID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	changes := services.WishlistChanges{Name: req.Name, Description: req.Description}
	if req.Visibility != nil {
		v, err := domain.ParseVisibility(*req.Visibility)
		if err != nil {
			return respondError(c, err)
		}
		changes.Visibility = &v
	}
	w, err := h.wishlistService.Update(c.UserContext(), userID, id, changes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewWishlistResponse(w))
}

func (h *WishlistHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := domain.ParseWishlistID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.wishlistService.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WishlistHandler) AddItem(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := domain.ParseWishlistID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.wishlistService.AddItem(c.UserContext(), userID, id, services.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Priority:    req.Priority,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

func (h *WishlistHandler) UpdateItem(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	itemID, err := domain.ParseItemID(c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.wishlistService.UpdateItem(c.UserContext(), userID, itemID, domain.ItemChanges{
		Title:        req.Title,
		Description:  req.Description,
		Link:         req.Link,
		Priority:     req.Priority,
		IsReceived:   req.IsReceived,
		ReceivedNote: req.ReceivedNote,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

func (h *WishlistHandler) DeleteItem(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	itemID, err := domain.ParseItemID(c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.wishlistService.DeleteItem(c.UserContext(), userID, itemID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
