package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/httpresp"
	"github.com/glamflow/salon-scheduler/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// ======================================================
// CREATE
// ======================================================

type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// Create accepts one review per completed booking, written by the
// booking's own customer.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	userID := currentUserID(c)

	var b models.Booking
	if err := h.db.First(&b, req.BookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "")
		return
	}
	if b.UserID != userID {
		httperr.Forbidden(c, "not_booking_owner", "")
		return
	}
	if b.Status != string(domain.StatusCompleted) {
		httperr.BadRequest(c, "booking_not_completed", "only completed bookings can be reviewed")
		return
	}

	var count int64
	h.db.Model(&models.Review{}).Where("booking_id = ?", b.ID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "already_reviewed", "")
		return
	}

	review := models.Review{
		UserID:    userID,
		StaffID:   b.StaffID,
		BookingID: b.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "")
		return
	}
	httpresp.Created(c, review)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "")
		return
	}
	if review.UserID != currentUserID(c) {
		httperr.Forbidden(c, "not_review_owner", "")
		return
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	if err := h.db.Save(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "")
		return
	}
	httpresp.OK(c, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "")
		return
	}

	role := currentUserRole(c)
	if role != models.RoleAdmin && review.UserID != currentUserID(c) {
		httperr.Forbidden(c, "not_review_owner", "")
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_review", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// ======================================================
// MINE
// ======================================================

func (h *ReviewHandler) MyReviews(c *gin.Context) {
	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.Review{}).Where("user_id = ?", currentUserID(c))

	var total int64
	q.Count(&total)

	var reviews []models.Review
	if err := q.
		Preload("Staff.User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "")
		return
	}
	httpresp.Page(c, reviews, total, page, limit)
}
