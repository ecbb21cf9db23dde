package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/httpresp"
	"github.com/glamflow/salon-scheduler/internal/models"
	usecase "github.com/glamflow/salon-scheduler/internal/usecase/booking"
)

type PaymentHandler struct {
	db       *gorm.DB
	initiate *usecase.InitiatePayment
	confirm  *usecase.ConfirmPayment
	fail     *usecase.FailPayment
}

func NewPaymentHandler(
	db *gorm.DB,
	initiate *usecase.InitiatePayment,
	confirm *usecase.ConfirmPayment,
	fail *usecase.FailPayment,
) *PaymentHandler {
	return &PaymentHandler{db: db, initiate: initiate, confirm: confirm, fail: fail}
}

// ======================================================
// INITIATE
// ======================================================

type InitiatePaymentRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot" binding:"required"`
	Notes     string `json:"notes"`
}

func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	userID := currentUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}

	out, err := h.initiate.Execute(c.Request.Context(), usecase.InitiatePaymentInput{
		UserID:        userID,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Notes:         req.Notes,
		CustomerName:  user.Name,
		CustomerPhone: user.Phone,
	})
	if err != nil {
		httperr.Map(c, err, "failed to initiate payment")
		return
	}
	httpresp.Created(c, out)
}

// ======================================================
// GATEWAY CALLBACKS
// ======================================================

type PaymentCallbackRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
}

func (h *PaymentHandler) Success(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.confirm.Execute(c.Request.Context(), usecase.ConfirmPaymentInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
	})
	if err != nil {
		httperr.Map(c, err, "failed to confirm payment")
		return
	}
	httpresp.OK(c, b)
}

func (h *PaymentHandler) Failure(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.fail.Execute(c.Request.Context(), usecase.FailPaymentInput{
		OrderID: req.OrderID,
		Reason:  req.Reason,
	}); err != nil {
		httperr.Map(c, err, "failed to record payment failure")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment marked failed"})
}

// ======================================================
// HISTORY
// ======================================================

func (h *PaymentHandler) MyPayments(c *gin.Context) {
	userID := currentUserID(c)
	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.Payment{}).Where("user_id = ?", userID)

	var total int64
	q.Count(&total)

	var payments []models.Payment
	if err := q.
		Preload("Booking.Service").
		Preload("Booking.Staff.User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "")
		return
	}
	httpresp.Page(c, payments, total, page, limit)
}
