package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/httpresp"
	"github.com/glamflow/salon-scheduler/internal/models"
	usecase "github.com/glamflow/salon-scheduler/internal/usecase/booking"
)

type BookingHandler struct {
	db     *gorm.DB
	create *usecase.CreateBooking
	cancel *usecase.CancelBooking
}

func NewBookingHandler(
	db *gorm.DB,
	create *usecase.CreateBooking,
	cancel *usecase.CancelBooking,
) *BookingHandler {
	return &BookingHandler{db: db, create: create, cancel: cancel}
}

// ======================================================
// CREATE (CUSTOMER)
// ======================================================

type CreateBookingRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot" binding:"required"`
	Notes     string `json:"notes"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	userID := currentUserID(c)
	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		UserID:    userID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Notes:     req.Notes,
		ActorID:   userID,
	})
	if err != nil {
		httperr.Map(c, err, "failed to create booking")
		return
	}
	httpresp.Created(c, b)
}

// ======================================================
// LIST (CUSTOMER)
// ======================================================

func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID := currentUserID(c)
	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.Booking{}).Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		if !domain.ValidStatus(status) {
			httperr.BadRequest(c, "invalid_status", "")
			return
		}
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var bookings []models.Booking
	if err := q.
		Preload("Staff.User").
		Preload("Service").
		Order("date DESC, time_slot DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "")
		return
	}
	httpresp.Page(c, bookings, total, page, limit)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var b models.Booking
	if err := h.db.
		Preload("Staff.User").
		Preload("Service").
		Preload("User").
		First(&b, id).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "")
		return
	}

	role := currentUserRole(c)
	if role != models.RoleAdmin && b.UserID != currentUserID(c) {
		httperr.Forbidden(c, "not_booking_owner", "")
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// CANCEL (CUSTOMER)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), usecase.CancelBookingInput{
		BookingID: id,
		ActorID:   currentUserID(c),
		ActorRole: currentUserRole(c),
	})
	if err != nil {
		httperr.Map(c, err, "failed to cancel booking")
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// CREATE (ADMIN)
// ======================================================

type AdminCreateBookingRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot" binding:"required"`
	Notes     string `json:"notes"`
}

// AdminCreate books on behalf of any customer with any staff member; the
// booking lands directly in confirmed.
func (h *BookingHandler) AdminCreate(c *gin.Context) {
	var req AdminCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var client models.User
	if err := h.db.First(&client, req.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		UserID:    client.ID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Notes:     req.Notes,
		Confirmed: true,
		ActorID:   currentUserID(c),
	})
	if err != nil {
		httperr.Map(c, err, "failed to create booking")
		return
	}
	httpresp.Created(c, b)
}

// ======================================================
// DELETE
// ======================================================

// Delete removes the booking row outright. Distinct from cancellation,
// which keeps the record with a cancelled status.
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var b models.Booking
	if err := h.db.First(&b, id).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "")
		return
	}

	if currentUserRole(c) != models.RoleAdmin && b.UserID != currentUserID(c) {
		httperr.Forbidden(c, "not_booking_owner", "")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", b.ID).
			Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", b.ID).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_booking", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// ======================================================
// REVIEWABLE
// ======================================================

// Reviewable lists completed bookings the customer has not reviewed yet.
func (h *BookingHandler) Reviewable(c *gin.Context) {
	userID := currentUserID(c)

	var bookings []models.Booking
	if err := h.db.
		Preload("Staff.User").
		Preload("Service").
		Where("user_id = ? AND status = ?", userID, string(domain.StatusCompleted)).
		Where("id NOT IN (?)",
			h.db.Model(&models.Review{}).Select("booking_id").Where("user_id = ?", userID)).
		Order("date DESC").
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bookings})
}
