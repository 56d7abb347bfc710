// Package pagination normalizes page/limit query parameters for the listing
// endpoints (reports, users, audit trail).
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	// MaxLimit caps a single page so one request cannot pull an office's
	// whole report history.
	MaxLimit = 100
	MinLimit = 1
)

// Params is the validated page window a listing query applies.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page/limit from the request query. Missing, malformed or
// out-of-range values fall back to the defaults rather than failing the
// request.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
