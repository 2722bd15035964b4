// internal/interfaces/http/handlers/branch.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/coffeebean-backend/internal/domain/branch"
)

// BranchHandler handles store branch endpoints
type BranchHandler struct {
	branchService *branch.Service
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *branch.Service) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// GetBranches handles GET /branches
func (h *BranchHandler) GetBranches(c *gin.Context) {
	openOnly := c.Query("open") == "true"

	branches, err := h.branchService.GetBranches(c.Request.Context(), openOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve branches",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branches retrieved successfully",
		"data":    branches,
	})
}

// GetNearestBranch handles GET /branches/nearest
func (h *BranchHandler) GetNearestBranch(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}

	nearest, err := h.branchService.GetNearestBranch(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve nearest branch",
		})
		return
	}
	if nearest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No branches available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Nearest branch resolved successfully",
		"data":    nearest,
	})
}
