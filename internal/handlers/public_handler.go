package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glamflow/salon-scheduler/internal/config"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/httpresp"
	"github.com/glamflow/salon-scheduler/internal/models"
	"github.com/glamflow/salon-scheduler/internal/timezone"
	usecase "github.com/glamflow/salon-scheduler/internal/usecase/booking"
)

type PublicHandler struct {
	db           *gorm.DB
	config       *config.Config
	availability *usecase.GetAvailability
}

func NewPublicHandler(db *gorm.DB, cfg *config.Config, availability *usecase.GetAvailability) *PublicHandler {
	return &PublicHandler{db: db, config: cfg, availability: availability}
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("available = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "")
		return
	}
	httpresp.List(c, services)
}

func (h *PublicHandler) GetService(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "")
		return
	}
	httpresp.OK(c, service)
}

// ServiceReviews lists reviews left on bookings for one service.
func (h *PublicHandler) ServiceReviews(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.Review{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Where("bookings.service_id = ?", id)

	var total int64
	q.Count(&total)

	var reviews []models.Review
	if err := q.
		Preload("User").
		Order("reviews.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "")
		return
	}
	httpresp.Page(c, reviews, total, page, limit)
}

// ServiceStaff lists the staff who can take a booking for the service.
// Any staff member can perform any available service.
func (h *PublicHandler) ServiceStaff(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "")
		return
	}

	var staff []models.Staff
	if err := h.db.
		Preload("User").
		Order("id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "")
		return
	}

	out := make([]staffSummary, 0, len(staff))
	for i := range staff {
		out = append(out, h.summarize(&staff[i]))
	}
	httpresp.List(c, out)
}

// ======================================================
// STAFF
// ======================================================

type staffSummary struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Bio       string  `json:"bio"`
	AvatarURL string  `json:"avatar_url"`
	AvgRating float64 `json:"avg_rating"`
	Reviews   int64   `json:"reviews"`
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	var staff []models.Staff
	if err := h.db.
		Preload("User").
		Order("id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "")
		return
	}

	out := make([]staffSummary, 0, len(staff))
	for i := range staff {
		out = append(out, h.summarize(&staff[i]))
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) GetStaff(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var staff models.Staff
	if err := h.db.Preload("User").First(&staff, id).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "")
		return
	}

	summary := h.summarize(&staff)
	c.JSON(http.StatusOK, gin.H{
		"staff":    summary,
		"schedule": staff.WeeklySchedule,
	})
}

func (h *PublicHandler) summarize(s *models.Staff) staffSummary {
	var avg float64
	var count int64
	h.db.Model(&models.Review{}).Where("staff_id = ?", s.ID).Count(&count)
	if count > 0 {
		h.db.Model(&models.Review{}).
			Where("staff_id = ?", s.ID).
			Select("AVG(rating)").
			Scan(&avg)
	}
	return staffSummary{
		ID:        s.ID,
		Name:      s.User.Name,
		Bio:       s.Bio,
		AvatarURL: s.AvatarURL,
		AvgRating: avg,
		Reviews:   count,
	}
}

func (h *PublicHandler) StaffReviews(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	page, limit, offset := pageParams(c)

	var total int64
	h.db.Model(&models.Review{}).Where("staff_id = ?", id).Count(&total)

	var reviews []models.Review
	if err := h.db.
		Preload("User").
		Where("staff_id = ?", id).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "")
		return
	}
	httpresp.Page(c, reviews, total, page, limit)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	staffID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	loc := timezone.Location(h.config.Timezone)
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "expected YYYY-MM-DD")
		return
	}
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), usecase.AvailabilityInput{
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
		Now:       time.Now().In(loc),
	})
	if err != nil {
		httperr.Map(c, err, "failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}
