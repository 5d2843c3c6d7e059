package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nextiwant/wishlist-backend/internal/config"
	"github.com/nextiwant/wishlist-backend/internal/handlers"
	"github.com/nextiwant/wishlist-backend/internal/middleware"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Profile  *handlers.ProfileHandler
	Wishlist *handlers.WishlistHandler
	Public   *handlers.PublicHandler
}

// Setup registers the API. storage backs the rate limiters; nil keeps them in
// memory.
func Setup(app *fiber.App, cfg *config.Config, h Handlers, storage fiber.Storage) {
	api := app.Group("/api")
	api.Use(middleware.RateLimit("api", cfg.RateLimitMax, storage))

	api.Get("/health", h.Health.Check)

	protected := middleware.JWTProtected(cfg)

	// Auth: stricter limit on the credential endpoints
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit("auth", cfg.AuthRateLimitMax, storage))
	auth.Post("/signup", h.Auth.SignUp)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/reactivate", h.Auth.Reactivate)
	auth.Post("/logout", protected, h.Auth.Logout)
	auth.Put("/password", protected, h.Auth.ChangePassword)
	auth.Delete("/account", protected, h.Auth.Deactivate)

	// Profiles
	api.Get("/users/me/profile", protected, h.Profile.GetMine)
	api.Put("/users/me/profile", protected, h.Profile.UpdateMine)
	api.Get("/users/:id/public", h.Profile.GetPublic)

	// Wishlists (owner only)
	wl := api.Group("/wishlists", protected)
	wl.Get("/", h.Wishlist.List)
	wl.Post("/", h.Wishlist.Create)
	wl.Put("/items/:itemId", h.Wishlist.UpdateItem)
	wl.Delete("/items/:itemId", h.Wishlist.DeleteItem)
	wl.Get("/:id", h.Wishlist.Get)
	wl.Put("/:id", h.Wishlist.Update)
	wl.Delete("/:id", h.Wishlist.Delete)
	wl.Post("/:id/items", h.Wishlist.AddItem)

	// Sharing. Static prefixes go before the :token routes.
	pub := api.Group("/public")
	pub.Post("/wishlists/:id/share", protected, h.Public.CreateShare)
	pub.Delete("/wishlists/:id/share", protected, h.Public.RevokeShare)
	pub.Post("/items/:itemId/comments", protected, h.Public.AddComment)
	pub.Post("/comments/:commentId/replies", protected, h.Public.AddReply)
	pub.Get("/:token", h.Public.GetWishlist)
	pub.Get("/:token/comments", h.Public.ListComments)
	pub.Post("/:token/claim", protected, h.Public.Claim)
}
