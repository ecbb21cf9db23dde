package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/httpresp"
	"github.com/glamflow/salon-scheduler/internal/models"
	"github.com/glamflow/salon-scheduler/internal/storage"
	usecase "github.com/glamflow/salon-scheduler/internal/usecase/booking"
)

type StaffHandler struct {
	db         *gorm.DB
	create     *usecase.CreateBooking
	status     *usecase.UpdateStatus
	reschedule *usecase.RescheduleBooking
	avatars    *storage.AvatarStore
}

func NewStaffHandler(
	db *gorm.DB,
	create *usecase.CreateBooking,
	status *usecase.UpdateStatus,
	reschedule *usecase.RescheduleBooking,
	avatars *storage.AvatarStore,
) *StaffHandler {
	return &StaffHandler{
		db:         db,
		create:     create,
		status:     status,
		reschedule: reschedule,
		avatars:    avatars,
	}
}

func (h *StaffHandler) mustStaff(c *gin.Context) (*models.Staff, bool) {
	var staff models.Staff
	if err := h.db.
		Preload("User").
		Where("user_id = ?", currentUserID(c)).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "no staff profile for this account")
		return nil, false
	}
	return &staff, true
}

// ======================================================
// PROFILE
// ======================================================

func (h *StaffHandler) Profile(c *gin.Context) {
	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}
	httpresp.OK(c, staff)
}

type UpdateStaffProfileRequest struct {
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
}

func (h *StaffHandler) UpdateProfile(c *gin.Context) {
	var req UpdateStaffProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}

	staff.Specialty = req.Specialty
	staff.Bio = req.Bio
	if err := h.db.Save(staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "")
		return
	}
	httpresp.OK(c, staff)
}

// ======================================================
// AVATAR
// ======================================================

func (h *StaffHandler) UploadAvatar(c *gin.Context) {
	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "multipart field 'avatar' is required")
		return
	}
	defer file.Close()

	url, err := h.avatars.Upload(c.Request.Context(), staff.ID, file)
	if err != nil {
		httperr.Map(c, err, "failed to upload avatar")
		return
	}

	staff.AvatarURL = url
	if err := h.db.Save(staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

func (h *StaffHandler) GetSchedule(c *gin.Context) {
	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}
	httpresp.OK(c, staff.WeeklySchedule)
}

func (h *StaffHandler) UpdateSchedule(c *gin.Context) {
	var sched models.WeeklySchedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := domain.ValidateWeeklySchedule(sched); err != nil {
		httperr.Map(c, err, "invalid weekly schedule")
		return
	}

	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}

	staff.WeeklySchedule = sched
	if err := h.db.Save(staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_schedule", "")
		return
	}
	httpresp.OK(c, staff.WeeklySchedule)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *StaffHandler) Bookings(c *gin.Context) {
	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}

	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.Booking{}).Where("staff_id = ?", staff.ID)
	if date := c.Query("date"); date != "" {
		if !validDate(date) {
			httperr.BadRequest(c, "invalid_date", "expected YYYY-MM-DD")
			return
		}
		q = q.Where("date = ?", date)
	}
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
		Preload("User").
		Preload("Service").
		Order("date ASC, time_slot ASC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "")
		return
	}
	httpresp.Page(c, bookings, total, page, limit)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *StaffHandler) UpdateBookingStatus(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.status.Execute(c.Request.Context(), usecase.UpdateStatusInput{
		BookingID: id,
		Status:    req.Status,
		ActorID:   currentUserID(c),
		ActorRole: currentUserRole(c),
	})
	if err != nil {
		httperr.Map(c, err, "failed to update booking status")
		return
	}
	httpresp.OK(c, b)
}

type RescheduleRequest struct {
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
	StaffID  uint   `json:"staff_id"`
}

func (h *StaffHandler) Reschedule(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleBookingInput{
		BookingID: id,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		StaffID:   req.StaffID,
		ActorID:   currentUserID(c),
		ActorRole: currentUserRole(c),
	})
	if err != nil {
		httperr.Map(c, err, "failed to reschedule booking")
		return
	}
	httpresp.OK(c, b)
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *StaffHandler) UpdateNotes(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}

	var b models.Booking
	if err := h.db.First(&b, id).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "")
		return
	}
	if b.StaffID != staff.ID {
		httperr.Forbidden(c, "not_booking_owner", "")
		return
	}

	b.Notes = req.Notes
	if err := h.db.Save(&b).Error; err != nil {
		httperr.Internal(c, "failed_to_update_notes", "")
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// CREATE ON BEHALF
// ======================================================

type StaffCreateBookingRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot" binding:"required"`
	Notes     string `json:"notes"`
}

// CreateBooking books a slot for a walk-in or phone client. The booking
// lands directly in confirmed.
func (h *StaffHandler) CreateBooking(c *gin.Context) {
	var req StaffCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}

	var client models.User
	if err := h.db.First(&client, req.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		UserID:    client.ID,
		StaffID:   staff.ID,
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
// CLIENTS
// ======================================================

func (h *StaffHandler) Clients(c *gin.Context) {
	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}

	page, limit, offset := pageParams(c)

	sub := h.db.Model(&models.Booking{}).
		Select("DISTINCT user_id").
		Where("staff_id = ?", staff.ID)

	var total int64
	h.db.Model(&models.User{}).Where("id IN (?)", sub).Count(&total)

	var clients []models.User
	if err := h.db.
		Where("id IN (?)", sub).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "")
		return
	}
	httpresp.Page(c, clients, total, page, limit)
}

// ======================================================
// REVIEW REPLIES
// ======================================================

type ReplyReviewRequest struct {
	Reply string `json:"reply" binding:"required"`
}

func (h *StaffHandler) ReplyToReview(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req ReplyReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staff, ok := h.mustStaff(c)
	if !ok {
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "")
		return
	}
	if review.StaffID != staff.ID {
		httperr.Forbidden(c, "not_review_target", "")
		return
	}

	review.Reply = req.Reply
	if err := h.db.Save(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "")
		return
	}
	httpresp.OK(c, review)
}
