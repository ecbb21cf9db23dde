package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glamflow/salon-scheduler/internal/audit"
	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/httpresp"
	"github.com/glamflow/salon-scheduler/internal/models"
)

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, auditor *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: auditor}
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.User{})

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like)
	}
	if role := c.Query("role"); role != "" {
		if !models.ValidRole(role) {
			httperr.BadRequest(c, "invalid_role", "")
			return
		}
		q = q.Where("role = ?", role)
	}

	var total int64
	q.Count(&total)

	var users []models.User
	if err := q.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "")
		return
	}
	httpresp.Page(c, users, total, page, limit)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}
	httpresp.OK(c, user)
}

// ======================================================
// ROLE CHANGES
// ======================================================

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole promotes or demotes a user. Promoting to staff creates the
// staff profile with a default schedule; demoting keeps the profile row
// out of booking history's way by deleting it in the same transaction.
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !models.ValidRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "")
		return
	}

	adminID := currentUserID(c)
	if id == adminID {
		httperr.BadRequest(c, "cannot_change_own_role", "")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}

	oldRole := user.Role
	if oldRole == req.Role {
		httpresp.OK(c, user)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		user.Role = req.Role
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if req.Role == models.RoleStaff {
			var count int64
			tx.Model(&models.Staff{}).Where("user_id = ?", user.ID).Count(&count)
			if count == 0 {
				staff := models.Staff{
					UserID:         user.ID,
					WeeklySchedule: models.DefaultWeeklySchedule(),
				}
				if err := tx.Create(&staff).Error; err != nil {
					return err
				}
			}
		}

		if oldRole == models.RoleStaff {
			if err := tx.Where("user_id = ?", user.ID).
				Delete(&models.Staff{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_change_role", "")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "role_changed",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: oldRole + " -> " + req.Role,
	})
	httpresp.OK(c, user)
}

type AdminUpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// UpdateUser edits profile fields and, when the role changes, cascades
// the staff profile create/delete in the same transaction.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "")
		return
	}

	adminID := currentUserID(c)

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "")
		return
	}

	oldRole := user.Role
	if req.Role != "" && req.Role != oldRole && id == adminID {
		httperr.BadRequest(c, "cannot_change_own_role", "")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		var count int64
		h.db.Model(&models.User{}).
			Where("email = ? AND id <> ?", email, user.ID).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, "email_already_registered", "")
			return
		}
		user.Email = email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if req.Role == "" || req.Role == oldRole {
			return nil
		}
		if req.Role == models.RoleStaff {
			var count int64
			tx.Model(&models.Staff{}).Where("user_id = ?", user.ID).Count(&count)
			if count == 0 {
				staff := models.Staff{
					UserID:         user.ID,
					WeeklySchedule: models.DefaultWeeklySchedule(),
				}
				if err := tx.Create(&staff).Error; err != nil {
					return err
				}
			}
		}
		if oldRole == models.RoleStaff {
			if err := tx.Where("user_id = ?", user.ID).
				Delete(&models.Staff{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_user", "")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})
	httpresp.OK(c, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	adminID := currentUserID(c)
	if id == adminID {
		httperr.BadRequest(c, "cannot_delete_self", "")
		return
	}

	if err := h.db.Delete(&models.User{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
	})
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// ======================================================
// STAFF
// ======================================================

func (h *AdminHandler) ListStaff(c *gin.Context) {
	var staff []models.Staff
	if err := h.db.
		Preload("User").
		Order("id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "")
		return
	}
	httpresp.List(c, staff)
}

type AdminUpdateStaffRequest struct {
	Specialty string                `json:"specialty"`
	Bio       string                `json:"bio"`
	Schedule  models.WeeklySchedule `json:"weekly_schedule"`
}

func (h *AdminHandler) UpdateStaff(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req AdminUpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var staff models.Staff
	if err := h.db.Preload("User").First(&staff, id).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "")
		return
	}

	if req.Specialty != "" {
		staff.Specialty = req.Specialty
	}
	if req.Bio != "" {
		staff.Bio = req.Bio
	}
	if req.Schedule != nil {
		if err := domain.ValidateWeeklySchedule(req.Schedule); err != nil {
			httperr.Map(c, err, "invalid weekly schedule")
			return
		}
		staff.WeeklySchedule = req.Schedule
	}

	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "")
		return
	}
	httpresp.OK(c, staff)
}

// ======================================================
// SERVICES
// ======================================================

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Available   *bool   `json:"available"`
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Available:   true,
	}
	if req.Available != nil {
		service.Available = *req.Available
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "")
		return
	}
	httpresp.Created(c, service)
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.DurationMin = req.DurationMin
	service.Price = req.Price
	if req.Available != nil {
		service.Available = *req.Available
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "")
		return
	}
	httpresp.OK(c, service)
}

func (h *AdminHandler) DeleteService(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	// Services with booking history are retired instead of removed.
	var count int64
	h.db.Model(&models.Booking{}).Where("service_id = ?", id).Count(&count)
	if count > 0 {
		if err := h.db.Model(&models.Service{}).
			Where("id = ?", id).
			Update("available", false).Error; err != nil {
			httperr.Internal(c, "failed_to_delete_service", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "service retired"})
		return
	}

	if err := h.db.Delete(&models.Service{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

func (h *AdminHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "")
		return
	}
	httpresp.List(c, services)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.Booking{})
	if status := c.Query("status"); status != "" {
		if !domain.ValidStatus(status) {
			httperr.BadRequest(c, "invalid_status", "")
			return
		}
		q = q.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		if !validDate(date) {
			httperr.BadRequest(c, "invalid_date", "expected YYYY-MM-DD")
			return
		}
		q = q.Where("date = ?", date)
	}
	if staffID, ok := queryUint(c, "staff_id"); ok {
		q = q.Where("staff_id = ?", staffID)
	}

	var total int64
	q.Count(&total)

	var bookings []models.Booking
	if err := q.
		Preload("User").
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

// ======================================================
// REVIEWS / PAYMENTS
// ======================================================

func (h *AdminHandler) ListReviews(c *gin.Context) {
	page, limit, offset := pageParams(c)

	var total int64
	h.db.Model(&models.Review{}).Count(&total)

	var reviews []models.Review
	if err := h.db.
		Preload("User").
		Preload("Staff.User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "")
		return
	}
	httpresp.Page(c, reviews, total, page, limit)
}

func (h *AdminHandler) ListPayments(c *gin.Context) {
	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.Payment{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var payments []models.Payment
	if err := q.
		Preload("User").
		Preload("Booking.Service").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "")
		return
	}
	httpresp.Page(c, payments, total, page, limit)
}
