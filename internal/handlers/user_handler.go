package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// ======================================================
// PROFILE
// ======================================================

func (h *UserHandler) Me(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, currentUserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}
	c.JSON(http.StatusOK, userPayload(&user))
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, currentUserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "")
		return
	}
	c.JSON(http.StatusOK, userPayload(&user))
}

// ======================================================
// PASSWORD
// ======================================================

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, currentUserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(req.CurrentPassword),
	); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "")
		return
	}

	user.PasswordHash = string(hashed)
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_password", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// ======================================================
// ACCOUNT
// ======================================================

// DeleteAccount soft-deletes the user. Bookings stay for reporting.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.db.Delete(&models.User{}, currentUserID(c)).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_account", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *UserHandler) Dashboard(c *gin.Context) {
	userID := currentUserID(c)

	var upcoming, completed, cancelled int64
	h.db.Model(&models.Booking{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)}).
		Count(&upcoming)
	h.db.Model(&models.Booking{}).
		Where("user_id = ? AND status = ?", userID, string(domain.StatusCompleted)).
		Count(&completed)
	h.db.Model(&models.Booking{}).
		Where("user_id = ? AND status = ?", userID, string(domain.StatusCancelled)).
		Count(&cancelled)

	var spent float64
	h.db.Model(&models.Payment{}).
		Where("user_id = ? AND status = ?", userID, models.PaymentSuccessful).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent)

	c.JSON(http.StatusOK, gin.H{
		"upcoming_bookings":  upcoming,
		"completed_bookings": completed,
		"cancelled_bookings": cancelled,
		"total_spent":        spent,
	})
}
