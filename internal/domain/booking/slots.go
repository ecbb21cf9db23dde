package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

// timeToMinutes converts "HH:mm" to minutes since midnight.
func timeToMinutes(hm string) (int, error) {
	parts := strings.SplitN(hm, ":", 3)
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour %q", hm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute %q", hm)
	}

	return h*60 + m, nil
}

func minutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// normalizeSlot strips seconds from a stored slot ("10:30:00" -> "10:30").
func normalizeSlot(slot string) string {
	if len(slot) > 5 {
		return slot[:5]
	}
	return slot
}

// GenerateSlots walks the fixed grid anchored at startTime: every offset
// startTime + k*duration that still fits before endTime is a candidate.
// Slots never align to existing-booking boundaries.
func GenerateSlots(startTime, endTime string, durationMin int) ([]string, error) {
	if durationMin <= 0 {
		return nil, httperr.ErrConfiguration("invalid_duration")
	}

	start, err := timeToMinutes(startTime)
	if err != nil {
		return nil, httperr.ErrConfiguration("invalid_schedule_time")
	}
	end, err := timeToMinutes(endTime)
	if err != nil {
		return nil, httperr.ErrConfiguration("invalid_schedule_time")
	}

	slots := []string{}
	for cur := start; cur+durationMin <= end; cur += durationMin {
		slots = append(slots, minutesToTime(cur))
	}
	return slots, nil
}

// AvailableSlots computes the bookable start-times for one staff member,
// service duration and date. bookedSlots are the start-times of that day's
// slot-consuming bookings; now is passed explicitly so the today's-past
// filter is deterministic under test.
//
// An off day yields an empty, non-nil slice. That is availability, not an
// error. A missing schedule entry or non-positive duration is a
// configuration fault.
func AvailableSlots(
	sched models.WeeklySchedule,
	date time.Time,
	durationMin int,
	bookedSlots []string,
	now time.Time,
) ([]string, error) {

	if durationMin <= 0 {
		return nil, httperr.ErrConfiguration("invalid_duration")
	}

	entry, err := ScheduleFor(sched, date)
	if err != nil {
		return nil, err
	}

	if entry.IsOff {
		return []string{}, nil
	}

	all, err := GenerateSlots(entry.StartTime, entry.EndTime, durationMin)
	if err != nil {
		return nil, err
	}

	busy := make(map[string]struct{}, len(bookedSlots))
	for _, slot := range bookedSlots {
		busy[normalizeSlot(slot)] = struct{}{}
	}

	available := []string{}
	for _, slot := range all {
		if _, taken := busy[slot]; taken {
			continue
		}
		available = append(available, slot)
	}

	// Same calendar day: drop slots that have already started.
	if sameDay(date, now) {
		nowMinutes := now.Hour()*60 + now.Minute()
		kept := available[:0]
		for _, slot := range available {
			m, err := timeToMinutes(slot)
			if err != nil {
				continue
			}
			if m > nowMinutes {
				kept = append(kept, slot)
			}
		}
		available = kept
	}

	return available, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
