package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// PeriodParams are the optional from/to query parameters (YYYY-MM-DD) of
// listings and reports. Both ends are inclusive.
type PeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// ToPeriod widens To to the end of its day.
func (p PeriodParams) ToPeriod() domain.Period {
	period := domain.Period{From: p.From}
	if !p.To.IsZero() {
		period.To = p.To.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return period
}

// PageParams defines limit/offset query parameters.
type PageParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
