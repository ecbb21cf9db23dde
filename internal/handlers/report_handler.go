package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

// ReportHandler aggregates booking and revenue numbers for the admin
// dashboard.
type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *ReportHandler) Dashboard(c *gin.Context) {
	var users, staff, services int64
	h.db.Model(&models.User{}).Count(&users)
	h.db.Model(&models.Staff{}).Count(&staff)
	h.db.Model(&models.Service{}).Count(&services)

	byStatus := map[string]int64{}
	rows := []struct {
		Status string
		Count  int64
	}{}
	h.db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows)
	for _, r := range rows {
		byStatus[r.Status] = r.Count
	}

	var revenue float64
	h.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentSuccessful).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue)

	today := time.Now().Format("2006-01-02")
	var todays int64
	h.db.Model(&models.Booking{}).
		Where("date = ? AND status IN ?", today, []string{
			string(domain.StatusPending),
			string(domain.StatusConfirmed),
		}).
		Count(&todays)

	c.JSON(http.StatusOK, gin.H{
		"users":              users,
		"staff":              staff,
		"services":           services,
		"bookings_by_status": byStatus,
		"total_revenue":      revenue,
		"todays_bookings":    todays,
	})
}

// ======================================================
// REVENUE
// ======================================================

type revenueDay struct {
	Day      string  `json:"day"`
	Payments int64   `json:"payments"`
	Revenue  float64 `json:"revenue"`
}

func (h *ReportHandler) Revenue(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	var days []revenueDay
	if err := h.db.
		Model(&models.Payment{}).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS day, COUNT(*) AS payments, COALESCE(SUM(amount), 0) AS revenue").
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.PaymentSuccessful, from, to).
		Group("day").
		Order("day ASC").
		Scan(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "")
		return
	}

	var total float64
	var count int64
	for _, d := range days {
		total += d.Revenue
		count += d.Payments
	}

	c.JSON(http.StatusOK, gin.H{
		"from":           from.Format("2006-01-02"),
		"to":             to.AddDate(0, 0, -1).Format("2006-01-02"),
		"total_revenue":  total,
		"total_payments": count,
		"daily":          days,
	})
}

// ======================================================
// STAFF PERFORMANCE
// ======================================================

type staffPerformance struct {
	StaffID   uint    `json:"staff_id"`
	Name      string  `json:"name"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	AvgRating float64 `json:"avg_rating"`
}

func (h *ReportHandler) StaffPerformance(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	var out []staffPerformance
	if err := h.db.
		Table("staffs").
		Select(`staffs.id AS staff_id,
			users.name,
			COUNT(*) FILTER (WHERE bookings.status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE bookings.status = 'cancelled') AS cancelled,
			COALESCE((SELECT AVG(rating) FROM reviews WHERE reviews.staff_id = staffs.id), 0) AS avg_rating`).
		Joins("JOIN users ON users.id = staffs.user_id").
		Joins("LEFT JOIN bookings ON bookings.staff_id = staffs.id AND bookings.date >= ? AND bookings.date < ?",
			from.Format("2006-01-02"), to.Format("2006-01-02")).
		Group("staffs.id, users.name").
		Order("completed DESC").
		Scan(&out).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":  from.Format("2006-01-02"),
		"to":    to.AddDate(0, 0, -1).Format("2006-01-02"),
		"staff": out,
	})
}

// reportRange parses ?from=YYYY-MM-DD&to=YYYY-MM-DD, defaulting to the
// last 30 days. The returned 'to' is exclusive.
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = t.AddDate(0, 0, 1)
	}

	if !to.After(from) {
		httperr.BadRequest(c, "invalid_range", "'to' must not be before 'from'")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
