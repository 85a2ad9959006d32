package planner

import (
	"time"

	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/utils"
)

// ServiceActiveOn reports whether a service operates on the given calendar
// date. The weekly pattern applies only inside the calendar's date range;
// calendar_dates exceptions override it for their exact date. A service with
// no calendar (including a dangling service reference) is never active.
func ServiceActiveOn(idx *gtfs.Index, serviceID string, date time.Time) bool {
	if serviceID == "" {
		return false
	}
	ymd := utils.YMD(date)

	base := false
	if cal, ok := idx.CalendarForService(serviceID); ok && ymd >= cal.StartDate && ymd <= cal.EndDate {
		switch date.Weekday() {
		case time.Monday:
			base = cal.Monday
		case time.Tuesday:
			base = cal.Tuesday
		case time.Wednesday:
			base = cal.Wednesday
		case time.Thursday:
			base = cal.Thursday
		case time.Friday:
			base = cal.Friday
		case time.Saturday:
			base = cal.Saturday
		case time.Sunday:
			base = cal.Sunday
		}
	}

	for _, cd := range idx.CalendarDatesForService(serviceID) {
		if cd.Date != ymd {
			continue
		}
		switch cd.Exception {
		case gtfs.ExceptionAdded:
			return true
		case gtfs.ExceptionRemoved:
			return false
		}
	}
	return base
}
