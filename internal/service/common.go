package service

import (
	"errors"
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/auth"
	"infinity-park/internal/model"
	"time"

	"gorm.io/gorm"
)

// VisitWindow is the range of dates a visitor may pick: today and the
// following Days-1 days.
type VisitWindow struct {
	Days int
	Now  func() time.Time
}

func NewVisitWindow(days int, now func() time.Time) VisitWindow {
	if now == nil {
		now = time.Now
	}
	return VisitWindow{Days: days, Now: now}
}

func (w VisitWindow) Dates() []string {
	today := w.Now()
	dates := make([]string, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		dates = append(dates, today.AddDate(0, 0, i).Format(model.DateLayout))
	}
	return dates
}

// Check returns a validation error naming field when date is malformed or
// falls outside the window.
func (w VisitWindow) Check(field, date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return apperr.Validation(field, "must be YYYY-MM-DD")
	}
	for _, d := range w.Dates() {
		if d == date {
			return nil
		}
	}
	return apperr.Validation(field, fmt.Sprintf("must be within the next %d days", w.Days))
}

func requireSession(sess *auth.Session) error {
	if !sess.Authenticated() {
		return apperr.ErrAuthenticationRequired
	}
	return nil
}

func requireAdmin(sess *auth.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if !sess.IsAdmin() {
		return apperr.ErrForbidden
	}
	return nil
}

// dbError classifies a repository error: a missing row becomes NotFound,
// anything already classified passes through, the rest is a persistence
// failure.
func dbError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	case apperr.Classified(err):
		return err
	default:
		return apperr.Persistence(op, err)
	}
}
