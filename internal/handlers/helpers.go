package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glamflow/salon-scheduler/internal/middleware"
)

// --------------------------------------------------
// Request context
// --------------------------------------------------

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func currentUserRole(c *gin.Context) string {
	return c.MustGet(middleware.ContextUserRole).(string)
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// --------------------------------------------------
// Pagination
// --------------------------------------------------

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

func totalPages(totalItems int64, limit int) int {
	pages := int(totalItems) / limit
	if int(totalItems)%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}

// --------------------------------------------------
// Dates
// --------------------------------------------------

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
