package booking

import (
	"time"

	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// ValidateWeeklySchedule checks the staff-owned schedule invariants: all 7
// weekday keys present, "HH:mm" times, start < end on working days.
func ValidateWeeklySchedule(sched models.WeeklySchedule) error {
	if sched == nil {
		return httperr.ErrValidation("schedule_required")
	}

	for _, day := range weekdayNames {
		entry, ok := sched[day]
		if !ok {
			return httperr.ErrValidation("schedule_day_missing")
		}
		if entry.IsOff {
			continue
		}

		start, err := timeToMinutes(entry.StartTime)
		if err != nil {
			return httperr.ErrValidation("invalid_start_time")
		}
		end, err := timeToMinutes(entry.EndTime)
		if err != nil {
			return httperr.ErrValidation("invalid_end_time")
		}
		if start >= end {
			return httperr.ErrValidation("start_after_end")
		}
	}

	return nil
}

// ScheduleFor resolves the schedule entry for the date's weekday. A missing
// entry is a configuration fault, distinct from the staff being off.
func ScheduleFor(sched models.WeeklySchedule, date time.Time) (models.DaySchedule, error) {
	if sched == nil {
		return models.DaySchedule{}, httperr.ErrConfiguration("schedule_not_set")
	}

	day := weekdayNames[int(date.Weekday())]
	entry, ok := sched[day]
	if !ok {
		return models.DaySchedule{}, httperr.ErrConfiguration("schedule_day_missing")
	}

	return entry, nil
}
