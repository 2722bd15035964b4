// internal/interfaces/http/handlers/favorites.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/coffeebean-backend/internal/domain/favorites"
	"github.com/your-org/coffeebean-backend/internal/interfaces/http/middleware"
	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

// FavoritesHandler handles favorite product endpoints
type FavoritesHandler struct {
	favoritesService *favorites.Service
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(favoritesService *favorites.Service) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// GetFavorites handles GET /favorites
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ids, err := h.favoritesService.GetFavorites(c.Request.Context(), userID)
	if err != nil {
		respondFavoritesError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorites retrieved successfully",
		"data":    ids,
	})
}

// AddFavorite handles PUT /favorites/:productId
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	if err := h.favoritesService.AddFavorite(c.Request.Context(), userID, productID); err != nil {
		respondFavoritesError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite added successfully",
	})
}

// RemoveFavorite handles DELETE /favorites/:productId
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	if err := h.favoritesService.RemoveFavorite(c.Request.Context(), userID, productID); err != nil {
		respondFavoritesError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite removed successfully",
	})
}

func respondFavoritesError(c *gin.Context, err error) {
	if errors.Is(err, auth.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process favorites request"})
}
