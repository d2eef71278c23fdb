package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/middleware"
	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// AddReviewRequest represents the request body for reviewing a product
type AddReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// ReviewApprovalRequest represents the moderation decision on a review
type ReviewApprovalRequest struct {
	IsApproved bool `json:"isApproved"`
}

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// GetProductReviews lists the approved reviews of a product
func (rc *ReviewController) GetProductReviews(c *gin.Context) {
	utils.LogInfo("GetProductReviews called")

	productID := c.Param("id")
	reviews, err := rc.reviews.ProductReviews(c.Request.Context(), productID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogDebug("Found %d reviews for product %s", len(reviews), productID)
	c.JSON(http.StatusOK, reviews)
}

// AddProductReview adds the current user's review of a product
func (rc *ReviewController) AddProductReview(c *gin.Context) {
	utils.LogInfo("AddProductReview called")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrLoginRequired)
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid review request: %v", err)
		utils.BadRequest(c, "Rating must be between 1 and 5")
		return
	}

	productID := c.Param("id")
	if err := rc.reviews.AddReview(c.Request.Context(), productID, user.ID, req.Rating, req.Text); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("User %s reviewed product %s", user.ID, productID)
	utils.Message(c, http.StatusCreated, "Review added")
}

// ListReviews lists reviews by moderation status for admins
func (rc *ReviewController) ListReviews(c *gin.Context) {
	utils.LogInfo("ListReviews called")

	reviews, err := rc.reviews.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// SetReviewApproval approves or rejects a review
func (rc *ReviewController) SetReviewApproval(c *gin.Context) {
	utils.LogInfo("SetReviewApproval called")

	var req ReviewApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid approval request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest)
		return
	}

	review, err := rc.reviews.SetApproval(c.Request.Context(), c.Param("id"), req.IsApproved)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
